package main

import (
	"bytes"
	"encoding/gob"
	"fmt"

	tetris "github.com/jauhararifin/bagtetris"
)

const maxPacketSize = 1024 * 1024

type JoinMessage struct {
	ID   string
	Name string
	Room string
}

type RoomMessage struct {
	ID      string
	Message []byte
}

type LeaveMessage struct {
	ID string
}

// UserMessage is every client to server packet. Exactly one field is set.
type UserMessage struct {
	JoinMessage  *JoinMessage
	RoomMessage  *RoomMessage
	LeaveMessage *LeaveMessage
}

type IntentMessage struct {
	Intent tetris.Intent
}

type InitGameMessage struct {
	Players    map[string]string
	FPS        int
	Rows, Cols int
}

type GameStateUpdateMessage struct {
	State map[string]tetris.State
}

// RejectMessage tells a client its join was refused.
type RejectMessage struct {
	Reason string
}

// ServerMessage is every server to client packet. Exactly one field is set.
type ServerMessage struct {
	Init   *InitGameMessage
	Update *GameStateUpdateMessage
	Reject *RejectMessage
}

func encode(v interface{}) ([]byte, error) {
	buff := &bytes.Buffer{}
	if err := gob.NewEncoder(buff).Encode(v); err != nil {
		return nil, fmt.Errorf("cannot encode %T: %w", v, err)
	}
	return buff.Bytes(), nil
}

func decode(msg []byte, v interface{}) error {
	if err := gob.NewDecoder(bytes.NewReader(msg)).Decode(v); err != nil {
		return fmt.Errorf("cannot decode %T: %w", v, err)
	}
	return nil
}

func roomPacket(id string, v interface{}) ([]byte, error) {
	inner, err := encode(v)
	if err != nil {
		return nil, err
	}
	return encode(UserMessage{RoomMessage: &RoomMessage{ID: id, Message: inner}})
}
