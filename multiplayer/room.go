package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	tetris "github.com/jauhararifin/bagtetris"
)

var (
	ErrInvalidPlayer = errors.New("player id or name cannot be empty")
	ErrRoomFull      = errors.New("room already full")
	ErrUnknownPlayer = errors.New("no such player")
)

type MessageSender interface {
	Send(playerID string, msg []byte) error
}

type MessageSenderFunc func(playerID string, msg []byte) error

func (f MessageSenderFunc) Send(playerID string, msg []byte) error {
	return f(playerID, msg)
}

type Player struct {
	ID   string
	Name string
}

type RoomConfig struct {
	FPS        int
	UpdateFPS  int
	StartDelay time.Duration
	Rows, Cols int
}

func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		FPS:        60,
		UpdateFPS:  24,
		StartDelay: 3 * time.Second,
		Rows:       20,
		Cols:       10,
	}
}

type RoomStatus struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Started bool     `json:"started"`
	Over    []string `json:"over"`
}

// Room pits two players against each other. The server owns both sessions;
// clients only send intents and render the broadcast state. Every line one
// player clears becomes a garbage row for the other.
type Room struct {
	name   string
	config RoomConfig
	sender MessageSender
	logger *log.Logger

	m                sync.Mutex
	randomizer       *rand.Rand
	player1, player2 Player
	board1, board2   *tetris.Session
	isStarted        bool
	cancel           context.CancelFunc
	done             chan struct{}
}

func NewRoom(name string, sender MessageSender, config RoomConfig, logger *log.Logger) *Room {
	return &Room{
		name:       name,
		config:     config,
		sender:     sender,
		logger:     logger,
		randomizer: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Room) OnPlayerJoin(player Player) error {
	if player.ID == "" || player.Name == "" {
		return ErrInvalidPlayer
	}

	r.m.Lock()
	defer r.m.Unlock()

	if player.ID == r.player1.ID || player.ID == r.player2.ID {
		return nil
	}

	if r.player1.ID == "" {
		r.player1 = player
		r.logger.Printf("player %s (%s) joined, waiting for opponent\n", player.Name, player.ID)
		return nil
	}

	if r.player2.ID == "" {
		r.player2 = player
		r.logger.Printf("player %s (%s) joined, starting game\n", player.Name, player.ID)
		return r.initGame()
	}

	return ErrRoomFull
}

func (r *Room) OnPlayerLeave(playerID string) error {
	r.m.Lock()
	defer r.m.Unlock()

	switch playerID {
	case "":
		return ErrUnknownPlayer
	case r.player1.ID:
		r.player1 = r.player2
		r.player2 = Player{}
	case r.player2.ID:
		r.player2 = Player{}
	default:
		return ErrUnknownPlayer
	}
	r.logger.Printf("player %s left\n", playerID)
	r.stopGame()
	return nil
}

// IsEmpty reports whether nobody is left in the room.
func (r *Room) IsEmpty() bool {
	r.m.Lock()
	defer r.m.Unlock()
	return r.player1.ID == ""
}

// initGame must be called with r.m held.
func (r *Room) initGame() error {
	var board1, board2 *tetris.Session
	board1 = r.newBoard(r.randomizer.Int63(), func(rows int) { r.sendGarbage(board2, rows) })
	board2 = r.newBoard(r.randomizer.Int63(), func(rows int) { r.sendGarbage(board1, rows) })
	r.board1, r.board2 = board1, board2
	r.isStarted = true

	msg, err := encode(ServerMessage{Init: &InitGameMessage{
		Players: map[string]string{r.player1.ID: r.player1.Name, r.player2.ID: r.player2.Name},
		FPS:     r.config.FPS,
		Rows:    r.config.Rows,
		Cols:    r.config.Cols,
	}})
	if err != nil {
		return err
	}

	if err := r.sender.Send(r.player1.ID, msg); err != nil {
		r.logger.Printf("cannot send init message to player 1 (%s): %v\n", r.player1.ID, err)
	}
	if err := r.sender.Send(r.player2.ID, msg); err != nil {
		r.logger.Printf("cannot send init message to player 2 (%s): %v\n", r.player2.ID, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx, r.done, r.player1.ID, r.player2.ID, board1, board2)
	return nil
}

func (r *Room) newBoard(seed int64, onCleared tetris.ClearHandlerFunc) *tetris.Session {
	return tetris.NewSession(
		tetris.WithSize(r.config.Rows, r.config.Cols),
		tetris.WithGetter(tetris.NewRandomBagGetter(seed)),
		tetris.WithClearHandler(onCleared),
	)
}

func (r *Room) sendGarbage(to *tetris.Session, rows int) {
	for i := 0; i < rows; i++ {
		r.m.Lock()
		hole := r.randomizer.Intn(r.config.Cols)
		r.m.Unlock()
		to.AddGarbage(hole)
	}
}

// stopGame must be called with r.m held.
func (r *Room) stopGame() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.board1 = nil
	r.board2 = nil
	r.isStarted = false
}

// Close stops the game loop and waits for it to exit.
func (r *Room) Close() {
	r.m.Lock()
	done := r.done
	r.stopGame()
	r.m.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Room) run(ctx context.Context, done chan struct{}, id1, id2 string, board1, board2 *tetris.Session) {
	defer close(done)

	select {
	case <-time.After(r.config.StartDelay):
	case <-ctx.Done():
		return
	}

	gameTicker := time.NewTicker(time.Second / time.Duration(r.config.FPS))
	defer gameTicker.Stop()
	updateTicker := time.NewTicker(time.Second / time.Duration(r.config.UpdateFPS))
	defer updateTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-gameTicker.C:
			board1.Frame()
			board2.Frame()
		case <-updateTicker.C:
			over := board1.IsOver() && board2.IsOver()
			r.broadcast(id1, id2, board1, board2)
			if over {
				r.logger.Printf("game finished: %s over=%v, %s over=%v\n", id1, board1.IsOver(), id2, board2.IsOver())
				return
			}
		}
	}
}

func (r *Room) broadcast(id1, id2 string, board1, board2 *tetris.Session) {
	msg, err := encode(ServerMessage{Update: &GameStateUpdateMessage{
		State: map[string]tetris.State{
			id1: board1.State(),
			id2: board2.State(),
		},
	}})
	if err != nil {
		r.logger.Printf("cannot encode game state update message: %v\n", err)
		return
	}

	if err := r.sender.Send(id1, msg); err != nil {
		r.logger.Printf("cannot send game state update message to player 1 (%s): %v\n", id1, err)
	}
	if err := r.sender.Send(id2, msg); err != nil {
		r.logger.Printf("cannot send game state update message to player 2 (%s): %v\n", id2, err)
	}
}

func (r *Room) OnMessage(playerID string, msg []byte) error {
	intentMsg := IntentMessage{}
	if err := decode(msg, &intentMsg); err != nil {
		return fmt.Errorf("cannot parse intent message from player %s: %w", playerID, err)
	}

	board, err := r.boardOf(playerID)
	if err != nil {
		return err
	}
	if board == nil {
		return nil
	}
	board.ApplyIntent(intentMsg.Intent)
	return nil
}

// boardOf returns the session of playerID, nil while the game is not running.
func (r *Room) boardOf(playerID string) (*tetris.Session, error) {
	r.m.Lock()
	defer r.m.Unlock()
	switch {
	case playerID != "" && playerID == r.player1.ID:
		return r.board1, nil
	case playerID != "" && playerID == r.player2.ID:
		return r.board2, nil
	}
	return nil, ErrUnknownPlayer
}

func (r *Room) Status() RoomStatus {
	r.m.Lock()
	defer r.m.Unlock()

	status := RoomStatus{Name: r.name, Players: []string{}, Started: r.isStarted, Over: []string{}}
	for _, p := range []Player{r.player1, r.player2} {
		if p.ID != "" {
			status.Players = append(status.Players, p.Name)
		}
	}
	if r.board1 != nil && r.board1.IsOver() {
		status.Over = append(status.Over, r.player1.Name)
	}
	if r.board2 != nil && r.board2.IsOver() {
		status.Over = append(status.Over, r.player2.Name)
	}
	return status
}
