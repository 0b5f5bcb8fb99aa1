package tetris

import (
	"math/rand"
)

type PieceGetter interface {
	Next() PieceID
}

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// BagGetter deals every piece exactly once per cycle of seven, reshuffling
// when the bag runs dry.
type BagGetter struct {
	random RandomSource
	bag    []PieceID
}

func NewBagGetter(random RandomSource) *BagGetter {
	return &BagGetter{
		random: random,
		bag:    make([]PieceID, 0, len(AllPieces)),
	}
}

func NewRandomBagGetter(seed int64) *BagGetter {
	return NewBagGetter(rand.New(rand.NewSource(seed)))
}

func (b *BagGetter) Next() PieceID {
	if len(b.bag) == 0 {
		b.refill()
	}
	last := len(b.bag) - 1
	id := b.bag[last]
	b.bag = b.bag[:last]
	return id
}

// Remaining reports how many pieces are left before the next reshuffle.
func (b *BagGetter) Remaining() int {
	return len(b.bag)
}

func (b *BagGetter) refill() {
	sequence := make([]PieceID, len(AllPieces))
	copy(sequence, AllPieces)
	for len(sequence) > 0 {
		i := b.random.Intn(len(sequence))
		b.bag = append(b.bag, sequence[i])
		sequence = append(sequence[:i], sequence[i+1:]...)
	}
}

type QueueGetter struct {
	queue []PieceID
}

func NewQueueGetter(ids ...PieceID) *QueueGetter {
	q := &QueueGetter{queue: make([]PieceID, 0, len(ids))}
	q.Push(ids...)
	return q
}

// Next pops the front of the queue. It panics on an empty queue.
func (q *QueueGetter) Next() PieceID {
	id := q.queue[0]
	q.queue = q.queue[1:]
	return id
}

func (q *QueueGetter) Push(ids ...PieceID) {
	q.queue = append(q.queue, ids...)
}
