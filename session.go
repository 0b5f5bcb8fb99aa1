package tetris

import (
	"fmt"
	"sync"
	"time"
)

// Intent is a player request. Input adapters (keyboard, buttons, network)
// translate their events into intents.
type Intent int

const (
	IntentMoveLeft Intent = iota
	IntentMoveRight
	IntentRotate
	IntentSoftDrop
	IntentHardDrop
)

func (i Intent) String() string {
	switch i {
	case IntentMoveLeft:
		return "move-left"
	case IntentMoveRight:
		return "move-right"
	case IntentRotate:
		return "rotate"
	case IntentSoftDrop:
		return "soft-drop"
	case IntentHardDrop:
		return "hard-drop"
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

type ClearHandler interface {
	OnCleared(rows int)
}

type ClearHandlerFunc func(rows int)

func (f ClearHandlerFunc) OnCleared(rows int) {
	f(rows)
}

type GameOverHandler interface {
	OnGameOver()
}

type GameOverHandlerFunc func()

func (f GameOverHandlerFunc) OnGameOver() {
	f()
}

// State is a copy of everything a renderer needs. It is gob friendly so it can
// travel over the wire.
type State struct {
	Cells   [][]PieceID
	Current Piece
	Next    PieceID
	IsOver  bool
}

// Session is one game: a playfield, the falling piece and the sequencer that
// feeds it. It is safe for concurrent use; handlers are invoked after the
// session lock is released.
type Session struct {
	getter          PieceGetter
	clearHandler    ClearHandler
	gameOverHandler GameOverHandler
	rows, cols      int
	fallThreshold   int

	field   *Playfield
	current Piece
	next    PieceID
	clock   Clock
	isOver  bool

	m sync.RWMutex
}

type SessionOption func(*Session)

func WithSize(rows, cols int) SessionOption {
	if rows < 10 || cols < 10 {
		panic(fmt.Errorf("minimal rows x cols is 10x10"))
	}
	return func(s *Session) {
		s.rows = rows
		s.cols = cols
	}
}

func WithGetter(getter PieceGetter) SessionOption {
	return func(s *Session) {
		s.getter = getter
	}
}

func WithFallThreshold(frames int) SessionOption {
	if frames < 0 {
		panic(fmt.Errorf("fall threshold cannot be negative"))
	}
	return func(s *Session) {
		s.fallThreshold = frames
	}
}

func WithClearHandler(handler ClearHandler) SessionOption {
	return func(s *Session) {
		s.clearHandler = handler
	}
}

func WithGameOverHandler(handler GameOverHandler) SessionOption {
	return func(s *Session) {
		s.gameOverHandler = handler
	}
}

func NewSession(options ...SessionOption) *Session {
	s := &Session{
		rows:          20,
		cols:          10,
		fallThreshold: FallThreshold,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.getter == nil {
		s.getter = NewRandomBagGetter(time.Now().UnixNano())
	}

	s.field = NewPlayfield(s.rows, s.cols)
	s.clock = NewClock(s.fallThreshold)
	s.current = Spawn(s.getter.Next(), s.cols)
	s.next = s.getter.Next()
	return s
}

// events collects what happened while the lock was held.
type events struct {
	cleared  int
	gameOver bool
}

func (s *Session) dispatch(ev events) {
	if ev.cleared > 0 && s.clearHandler != nil {
		s.clearHandler.OnCleared(ev.cleared)
	}
	if ev.gameOver && s.gameOverHandler != nil {
		s.gameOverHandler.OnGameOver()
	}
}

// ApplyIntent applies one player request. Requests that would put the piece
// in an invalid position are dropped silently, as is everything once the game
// is over.
func (s *Session) ApplyIntent(intent Intent) {
	s.m.Lock()
	var ev events
	if !s.isOver {
		switch intent {
		case IntentMoveLeft:
			s.moveHorizontal(-1)
		case IntentMoveRight:
			s.moveHorizontal(1)
		case IntentRotate:
			s.rotate()
		case IntentSoftDrop:
			s.fall(&ev)
		case IntentHardDrop:
			for !s.fall(&ev) {
			}
		}
	}
	s.m.Unlock()
	s.dispatch(ev)
}

func (s *Session) MoveHorizontal(delta int) {
	s.m.Lock()
	defer s.m.Unlock()
	if !s.isOver {
		s.moveHorizontal(delta)
	}
}

func (s *Session) RotatePiece() {
	s.ApplyIntent(IntentRotate)
}

func (s *Session) SoftDrop() {
	s.ApplyIntent(IntentSoftDrop)
}

func (s *Session) HardDrop() {
	s.ApplyIntent(IntentHardDrop)
}

// Frame advances the game by one animation frame.
func (s *Session) Frame() {
	s.m.Lock()
	var ev events
	if !s.isOver && s.clock.Advance() {
		s.fall(&ev)
	}
	s.m.Unlock()
	s.dispatch(ev)
}

// AddGarbage raises the field by one garbage row with a gap at hole. The game
// ends when the top row is already occupied.
func (s *Session) AddGarbage(hole int) {
	s.m.Lock()
	var ev events
	if !s.isOver {
		if s.field.RaiseGarbage(hole) {
			if !s.field.IsValidMove(s.current.Matrix, s.current.Row, s.current.Col) {
				s.current.Row--
			}
		} else {
			s.isOver = true
			ev.gameOver = true
		}
	}
	s.m.Unlock()
	s.dispatch(ev)
}

func (s *Session) moveHorizontal(delta int) {
	col := s.current.Col + delta
	if s.field.IsValidMove(s.current.Matrix, s.current.Row, col) {
		s.current.Col = col
	}
}

func (s *Session) rotate() {
	m := Rotate(s.current.Matrix)
	if s.field.IsValidMove(m, s.current.Row, s.current.Col) {
		s.current.Matrix = m
	}
}

// fall moves the piece one row down, locking it when it cannot move. It
// reports whether the piece locked (or the game ended).
func (s *Session) fall(ev *events) bool {
	if s.isOver {
		return true
	}
	row := s.current.Row + 1
	if s.field.IsValidMove(s.current.Matrix, row, s.current.Col) {
		s.current.Row = row
		return false
	}
	s.lock(ev)
	return true
}

func (s *Session) lock(ev *events) {
	if !s.field.Place(s.current.Matrix, s.current.Row, s.current.Col, s.current.ID) {
		s.isOver = true
		ev.gameOver = true
		return
	}
	ev.cleared += s.field.ClearLines()
	s.current = Spawn(s.next, s.cols)
	s.next = s.getter.Next()
}

func (s *Session) IsOver() bool {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.isOver
}

func (s *Session) Next() PieceID {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.next
}

// Current returns a copy of the falling piece.
func (s *Session) Current() Piece {
	s.m.RLock()
	defer s.m.RUnlock()
	return clonePiece(s.current)
}

func (s *Session) Size() (rows, cols int) {
	return s.rows, s.cols
}

func (s *Session) State() State {
	s.m.RLock()
	defer s.m.RUnlock()
	return State{
		Cells:   s.field.Snapshot(),
		Current: clonePiece(s.current),
		Next:    s.next,
		IsOver:  s.isOver,
	}
}

// SetState replaces the session contents with state. The hidden buffer is
// emptied and the fall clock is left as is.
func (s *Session) SetState(state State) {
	s.m.Lock()
	defer s.m.Unlock()
	s.field.Restore(state.Cells)
	s.current = clonePiece(state.Current)
	s.next = state.Next
	s.isOver = state.IsOver
}

// Render returns the visible cells with the falling piece drawn on top.
func (s *Session) Render() [][]PieceID {
	s.m.RLock()
	defer s.m.RUnlock()

	frame := s.field.Snapshot()
	p := s.current
	for r := range p.Matrix {
		for c := range p.Matrix[r] {
			y, x := p.Row+r, p.Col+c
			if p.Matrix[r][c] && y >= 0 && y < s.rows && x >= 0 && x < s.cols {
				frame[y][x] = p.ID
			}
		}
	}
	return frame
}

func clonePiece(p Piece) Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}
