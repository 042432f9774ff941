// Package server exposes the room engine over HTTP: a small REST
// surface for health, room info and history, and a websocket carrying
// the game commands.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"liarspoker/internal/room"
)

// Server is the HTTP server.
type Server struct {
	mux     *http.ServeMux
	manager *room.Manager
	log     *zap.Logger
}

// New creates a server with all routes.
func New(manager *room.Manager, log *zap.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		manager: manager,
		log:     log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/rooms/{code}", s.handleGetRoom)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type roomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	rm, ok := s.manager.Get(code)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	rm.Lock()
	info := roomInfo{
		Code:    rm.Game.Code,
		Players: len(rm.Game.Players),
		Started: rm.Game.Round != nil,
	}
	rm.Unlock()
	writeJSON(w, http.StatusOK, info)
}

type historyEntry struct {
	RoomCode   string          `json:"roomCode"`
	Ranking    json.RawMessage `json:"ranking"`
	FinishedAt string          `json:"finishedAt"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rows, err := s.manager.History(limit)
	if err != nil {
		s.log.Error("list history", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	out := make([]historyEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, historyEntry{
			RoomCode:   row.RoomCode,
			Ranking:    json.RawMessage(row.Ranking),
			FinishedAt: row.FinishedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
