package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RoomLister interface {
	Rooms() []RoomStatus
}

type statusServer struct {
	rooms     RoomLister
	logger    *log.Logger
	startTime time.Time
}

// newStatusRouter exposes read-only room information over HTTP.
func newStatusRouter(rooms RoomLister, logger *log.Logger) http.Handler {
	s := &statusServer{rooms: rooms, logger: logger, startTime: time.Now()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/rooms", s.handleListRooms)
	r.Get("/rooms/{name}", s.handleGetRoom)
	return r
}

func (s *statusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *statusServer) handleListRooms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.rooms.Rooms())
}

func (s *statusServer) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, room := range s.rooms.Rooms() {
		if room.Name == name {
			s.writeJSON(w, http.StatusOK, room)
			return
		}
	}
	s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
}

func (s *statusServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("cannot write response: %v\n", err)
	}
}
