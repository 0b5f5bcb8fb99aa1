package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sort"
	"sync"
)

type packetWriter interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
}

type server struct {
	conn   packetWriter
	config RoomConfig
	logger *log.Logger

	m        sync.RWMutex
	rooms    map[string]*Room
	userAddr map[string]*net.UDPAddr
	userRoom map[string]string
}

func newServer(conn packetWriter, config RoomConfig, logger *log.Logger) *server {
	return &server{
		conn:     conn,
		config:   config,
		logger:   logger,
		rooms:    make(map[string]*Room),
		userAddr: make(map[string]*net.UDPAddr),
		userRoom: make(map[string]string),
	}
}

// OnUserJoin seats a user in a room, creating the room on first use. A
// refused join is answered with a RejectMessage sent to addr.
func (s *server) OnUserJoin(id, name, room string, addr *net.UDPAddr) error {
	if err := s.join(id, name, room, addr); err != nil {
		s.reject(addr, err)
		return err
	}
	return nil
}

func (s *server) join(id, name, room string, addr *net.UDPAddr) error {
	if room == "" {
		return errors.New("room name cannot be empty")
	}

	s.m.Lock()
	prev, registered := s.userRoom[id]
	if registered && prev != room {
		s.m.Unlock()
		return fmt.Errorf("cannot join room %s: user %s already plays in room %s", room, id, prev)
	}
	r, ok := s.rooms[room]
	if !ok {
		r = NewRoom(room, s, s.config, log.New(s.logger.Writer(), fmt.Sprintf("[room %s] ", room), s.logger.Flags()))
		s.rooms[room] = r
	}
	s.userAddr[id] = addr
	s.userRoom[id] = room
	s.m.Unlock()

	if err := r.OnPlayerJoin(Player{ID: id, Name: name}); err != nil {
		if !registered {
			s.forget(id)
		}
		if r.IsEmpty() {
			s.m.Lock()
			delete(s.rooms, room)
			s.m.Unlock()
		}
		return fmt.Errorf("cannot join room %s: %w", room, err)
	}
	return nil
}

func (s *server) reject(addr *net.UDPAddr, reason error) {
	msg, err := encode(ServerMessage{Reject: &RejectMessage{Reason: reason.Error()}})
	if err != nil {
		s.logger.Printf("cannot encode reject message: %v\n", err)
		return
	}
	if _, err := s.conn.WriteToUDP(msg, addr); err != nil {
		s.logger.Printf("cannot send reject message to %v: %v\n", addr, err)
	}
}

func (s *server) OnUserLeave(id string) error {
	r, err := s.roomOf(id)
	if err != nil {
		return err
	}
	if err := r.OnPlayerLeave(id); err != nil {
		return err
	}
	s.forget(id)

	if r.IsEmpty() {
		s.m.Lock()
		delete(s.rooms, r.name)
		s.m.Unlock()
		r.Close()
	}
	return nil
}

func (s *server) OnUserMessage(id string, msg []byte) error {
	r, err := s.roomOf(id)
	if err != nil {
		return err
	}
	return r.OnMessage(id, msg)
}

func (s *server) roomOf(id string) (*Room, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	rid, ok := s.userRoom[id]
	if !ok {
		return nil, fmt.Errorf("cannot get user room with id=%s: %w", id, ErrUnknownPlayer)
	}
	r, ok := s.rooms[rid]
	if !ok {
		return nil, fmt.Errorf("cannot get room with id=%s", rid)
	}
	return r, nil
}

func (s *server) forget(id string) {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.userAddr, id)
	delete(s.userRoom, id)
}

func (s *server) Send(playerID string, msg []byte) error {
	s.m.RLock()
	addr, ok := s.userAddr[playerID]
	s.m.RUnlock()
	if !ok {
		return fmt.Errorf("cannot get user addr with id=%s: %w", playerID, ErrUnknownPlayer)
	}
	_, err := s.conn.WriteToUDP(msg, addr)
	return err
}

// Rooms lists every room sorted by name.
func (s *server) Rooms() []RoomStatus {
	s.m.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.m.RUnlock()

	statuses := make([]RoomStatus, 0, len(rooms))
	for _, r := range rooms {
		statuses = append(statuses, r.Status())
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

func (s *server) handlePacket(packet []byte, addr *net.UDPAddr) {
	userMsg := UserMessage{}
	if err := decode(packet, &userMsg); err != nil {
		s.logger.Printf("cannot parse user message from %v: %v\n", addr, err)
		return
	}

	switch {
	case userMsg.JoinMessage != nil:
		joinMsg := userMsg.JoinMessage
		if err := s.OnUserJoin(joinMsg.ID, joinMsg.Name, joinMsg.Room, addr); err != nil {
			s.logger.Printf("user %s cannot join: %v\n", joinMsg.ID, err)
		}
	case userMsg.RoomMessage != nil:
		roomMsg := userMsg.RoomMessage
		if err := s.OnUserMessage(roomMsg.ID, roomMsg.Message); err != nil {
			s.logger.Printf("cannot handle message from %s: %v\n", roomMsg.ID, err)
		}
	case userMsg.LeaveMessage != nil:
		if err := s.OnUserLeave(userMsg.LeaveMessage.ID); err != nil {
			s.logger.Printf("user %s cannot leave: %v\n", userMsg.LeaveMessage.ID, err)
		}
	}
}

// Close stops every room.
func (s *server) Close() {
	s.m.Lock()
	rooms := s.rooms
	s.rooms = make(map[string]*Room)
	s.m.Unlock()
	for _, r := range rooms {
		r.Close()
	}
}

// serve reads packets until ctx is done or the connection fails.
func serve(ctx context.Context, conn *net.UDPConn, s *server) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buff := make([]byte, maxPacketSize)
	for {
		n, addr, err := conn.ReadFromUDP(buff)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("cannot read from udp: %w", err)
		}
		s.handlePacket(buff[:n], addr)
	}
}
