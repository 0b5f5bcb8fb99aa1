package main

import (
	"fmt"
	"log"
	"net"
	"sort"

	"github.com/JoelOtter/termloop"
	"github.com/google/uuid"

	tetris "github.com/jauhararifin/bagtetris"
	"github.com/jauhararifin/bagtetris/termui"
)

func startClient(host, name, room string, logger *log.Logger) error {
	idUUID, err := uuid.NewUUID()
	if err != nil {
		return fmt.Errorf("cannot generate id: %w", err)
	}
	id := idUUID.String()
	logger.Printf("id generated: %s\n", id)

	s, err := net.ResolveUDPAddr("udp4", host)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", host, err)
	}
	logger.Printf("address resolved: %v\n", s)

	conn, err := net.DialUDP("udp4", nil, s)
	if err != nil {
		return fmt.Errorf("cannot connect to %v: %w", s, err)
	}
	defer conn.Close()
	logger.Printf("connected: %v\n", conn.LocalAddr())

	join, err := encode(UserMessage{JoinMessage: &JoinMessage{ID: id, Name: name, Room: room}})
	if err != nil {
		return err
	}
	if _, err := conn.Write(join); err != nil {
		return fmt.Errorf("cannot send join message: %w", err)
	}
	logger.Printf("user join message sent\n")

	buff := make([]byte, maxPacketSize)
	initmsg, err := waitForInit(conn, buff)
	if err != nil {
		return err
	}
	logger.Printf("init game message received: %+v\n", *initmsg)

	opponentID := opponentOf(id, initmsg.Players)
	logger.Printf("player1ID=%s player2ID=%s\n", id, opponentID)

	mine := tetris.NewSession(tetris.WithSize(initmsg.Rows, initmsg.Cols))
	theirs := tetris.NewSession(tetris.WithSize(initmsg.Rows, initmsg.Cols))

	sendIntent := func(intent tetris.Intent) {
		packet, err := roomPacket(id, IntentMessage{Intent: intent})
		if err != nil {
			logger.Printf("cannot encode intent message: %v\n", err)
			return
		}
		if _, err := conn.Write(packet); err != nil {
			logger.Printf("cannot send intent message: %v\n", err)
		}
	}

	go func() {
		for {
			n, _, err := conn.ReadFromUDP(buff)
			if err != nil {
				logger.Printf("cannot read from udp: %v\n", err)
				return
			}
			msg := ServerMessage{}
			if err := decode(buff[:n], &msg); err != nil {
				logger.Printf("cannot decode server message: %v\n", err)
				continue
			}
			if msg.Update == nil {
				continue
			}
			applyUpdate(msg.Update, id, opponentID, mine, theirs)
		}
	}()

	game := termloop.NewGame()
	level := termloop.NewBaseLevel(termloop.Cell{})
	level.AddEntity(termui.NewBoard(mine, 0, 2, initmsg.Rows, initmsg.Cols,
		termui.WithTitle(name),
		termui.WithIntentHandler(sendIntent),
	))
	level.AddEntity(termui.NewBoard(theirs, initmsg.Cols+15, 2, initmsg.Rows, initmsg.Cols,
		termui.WithTitle(initmsg.Players[opponentID]),
	))
	game.Screen().SetLevel(level)
	game.Start()

	leave, err := encode(UserMessage{LeaveMessage: &LeaveMessage{ID: id}})
	if err != nil {
		return err
	}
	if _, err := conn.Write(leave); err != nil {
		return fmt.Errorf("cannot send leave message: %w", err)
	}
	return nil
}

func waitForInit(conn *net.UDPConn, buff []byte) (*InitGameMessage, error) {
	for {
		n, _, err := conn.ReadFromUDP(buff)
		if err != nil {
			return nil, fmt.Errorf("cannot read init message: %w", err)
		}
		msg := ServerMessage{}
		if err := decode(buff[:n], &msg); err != nil {
			return nil, err
		}
		if msg.Reject != nil {
			return nil, fmt.Errorf("join rejected: %s", msg.Reject.Reason)
		}
		if msg.Init != nil {
			return msg.Init, nil
		}
	}
}

// opponentOf picks the other player id. Ids are sorted so the choice is
// stable should a room ever hold more than two players.
func opponentOf(id string, players map[string]string) string {
	ids := make([]string, 0, len(players))
	for pid := range players {
		if pid != id {
			ids = append(ids, pid)
		}
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func applyUpdate(update *GameStateUpdateMessage, id, opponentID string, mine, theirs *tetris.Session) {
	if state, ok := update.State[id]; ok {
		mine.SetState(state)
	}
	if state, ok := update.State[opponentID]; ok {
		theirs.SetState(state)
	}
}
