// Package room owns the registry of live rooms and the per-room
// command serialization the engine relies on.
package room

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"liarspoker/internal/game"
	"liarspoker/internal/storage"
)

// Room pairs the engine state with the outbound channels of the
// connected players. Commands must run under Lock from start to
// finish: rooms are causally independent, but within one room every
// command applies fully before the next is touched.
type Room struct {
	mu    sync.Mutex
	Game  *game.Room
	conns map[string]chan []byte
}

// Lock serializes a command against this room.
func (r *Room) Lock() { r.mu.Lock() }

// Unlock releases the room.
func (r *Room) Unlock() { r.mu.Unlock() }

// AddConn registers a player's outbound channel. Caller holds the lock.
func (r *Room) AddConn(playerID string, send chan []byte) {
	r.conns[playerID] = send
}

// RemoveConn drops a player's outbound channel. Caller holds the lock.
func (r *Room) RemoveConn(playerID string) {
	delete(r.conns, playerID)
}

// Conns returns the live outbound channels by player id. Caller holds
// the lock and must not retain the map.
func (r *Room) Conns() map[string]chan []byte {
	return r.conns
}

// Manager manages all active rooms.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	store *storage.Store
	log   *zap.Logger
}

// NewManager creates a room manager.
func NewManager(store *storage.Store, log *zap.Logger) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		store: store,
		log:   log,
	}
}

// Create makes a new empty room under a fresh join code.
func (m *Manager) Create() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for attempt := 0; attempt < 32; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := m.rooms[code]; taken {
			continue
		}
		r := &Room{
			Game:  game.NewRoom(code),
			conns: make(map[string]chan []byte),
		}
		m.rooms[code] = r
		return r, nil
	}
	return nil, fmt.Errorf("room codes exhausted")
}

// Get returns a room by code.
func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// Remove drops a room from the registry. Its state is gone for good.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	delete(m.rooms, code)
	m.mu.Unlock()
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// RecordResult writes a finished game's ranking to the history store.
// Failures are logged, not surfaced: the broadcast already happened
// and the room is being torn down either way.
func (m *Manager) RecordResult(code string, ranking []game.PlayerResult) {
	data, err := json.Marshal(ranking)
	if err != nil {
		m.log.Error("marshal ranking", zap.String("room", code), zap.Error(err))
		return
	}
	if err := m.store.RecordGame(code, string(data)); err != nil {
		m.log.Error("record game", zap.String("room", code), zap.Error(err))
	}
}

// History returns the most recent finished games.
func (m *Manager) History(limit int) ([]storage.GameRow, error) {
	return m.store.ListRecent(limit)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCode returns a 4-character join code.
func generateCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b), nil
}
