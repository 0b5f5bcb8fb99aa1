package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRooms []RoomStatus

func (s staticRooms) Rooms() []RoomStatus { return s }

func TestStatusRoutes(t *testing.T) {
	rooms := staticRooms{
		{Name: "alpha", Players: []string{"alice", "bob"}, Started: true, Over: []string{"bob"}},
		{Name: "beta", Players: []string{"carol"}, Over: []string{}},
	}
	router := newStatusRouter(rooms, discardLogger())

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"health", "/health", http.StatusOK},
		{"list", "/rooms", http.StatusOK},
		{"found", "/rooms/alpha", http.StatusOK},
		{"missing", "/rooms/gamma", http.StatusNotFound},
		{"unrouted", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestStatusListRoomsBody(t *testing.T) {
	rooms := staticRooms{{Name: "alpha", Players: []string{"alice"}, Over: []string{}}}
	rec := httptest.NewRecorder()
	newStatusRouter(rooms, discardLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []RoomStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []RoomStatus(rooms), got)
}

func TestStatusHealthBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newStatusRouter(staticRooms{}, discardLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
	assert.NotEmpty(t, got["uptime"])
}
