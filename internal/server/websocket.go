package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"liarspoker/internal/game"
	"liarspoker/internal/room"
)

// WSMessage is the JSON envelope for WebSocket messages.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createPayload struct {
	PlayerName string `json:"playerName"`
}

type joinPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type claimPayload struct {
	Claim string `json:"claim"`
}

type joinedPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type gameEndedPayload struct {
	RoomCode string              `json:"roomCode"`
	WinnerID string              `json:"winnerId,omitempty"`
	Players  []game.PlayerResult `json:"players,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	playerID := uuid.NewString()
	send := make(chan []byte, 64)
	defer close(send)

	// Writer goroutine: drain the channel into the socket.
	go func() {
		for msg := range send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	// First message must place the connection in a room.
	rm := s.awaitRoom(ctx, conn, playerID, send)
	if rm == nil {
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendWS(send, "error", errorPayload{Message: "invalid message"})
			continue
		}
		s.handleMessage(rm, playerID, send, msg)
	}

	s.handleDisconnect(rm, playerID)
	s.log.Info("player disconnected",
		zap.String("player", playerID), zap.String("room", rm.Game.Code))
}

// awaitRoom reads messages until the connection creates or joins a
// room, or fails fatally.
func (s *Server) awaitRoom(ctx context.Context, conn *websocket.Conn, playerID string, send chan []byte) *room.Room {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return nil
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendWS(send, "error", errorPayload{Message: "invalid message"})
			continue
		}

		switch msg.Type {
		case "create":
			var p createPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil || p.PlayerName == "" {
				s.sendWS(send, "error", errorPayload{Message: "playerName required"})
				continue
			}
			rm, err := s.manager.Create()
			if err != nil {
				s.log.Error("create room", zap.Error(err))
				s.sendWS(send, "error", errorPayload{Message: "could not create room"})
				continue
			}
			rm.Lock()
			rm.Game.AddPlayer(playerID, p.PlayerName)
			rm.AddConn(playerID, send)
			s.sendWS(send, "joined", joinedPayload{RoomCode: rm.Game.Code, PlayerID: playerID})
			s.broadcastState(rm)
			rm.Unlock()
			s.log.Info("room created",
				zap.String("room", rm.Game.Code), zap.String("player", playerID))
			return rm

		case "join":
			var p joinPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil || p.PlayerName == "" {
				s.sendWS(send, "error", errorPayload{Message: "roomCode and playerName required"})
				continue
			}
			rm, ok := s.manager.Get(p.RoomCode)
			if !ok {
				s.sendWS(send, "error", errorPayload{Message: "room not found"})
				continue
			}
			rm.Lock()
			if _, err := rm.Game.AddPlayer(playerID, p.PlayerName); err != nil {
				rm.Unlock()
				s.sendWS(send, "error", errorPayload{Message: err.Error()})
				continue
			}
			rm.AddConn(playerID, send)
			s.sendWS(send, "joined", joinedPayload{RoomCode: rm.Game.Code, PlayerID: playerID})
			s.broadcastState(rm)
			rm.Unlock()
			return rm

		default:
			s.sendWS(send, "error", errorPayload{Message: "create or join a room first"})
		}
	}
}

func (s *Server) handleMessage(rm *room.Room, playerID string, send chan []byte, msg WSMessage) {
	// The room may have been torn down while this connection idled;
	// commands against a dead room are dropped as a benign race.
	if live, ok := s.manager.Get(rm.Game.Code); !ok || live != rm {
		return
	}

	switch msg.Type {
	case "start":
		rm.Lock()
		defer rm.Unlock()
		if p := findPlayer(rm.Game, playerID); p == nil || !p.IsHost {
			s.sendWS(send, "error", errorPayload{Message: "only the host can start"})
			return
		}
		if err := rm.Game.Start(); err != nil {
			s.sendWS(send, "error", errorPayload{Message: err.Error()})
			return
		}
		s.broadcastState(rm)

	case "claim":
		var p claimPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Claim == "" {
			s.sendWS(send, "error", errorPayload{Message: "invalid claim payload"})
			return
		}
		rm.Lock()
		defer rm.Unlock()
		res, err := rm.Game.SubmitClaim(playerID, p.Claim)
		if errors.Is(err, game.ErrNoRound) {
			// Stale client racing a finished round: drop silently.
			return
		}
		if err != nil {
			s.sendWS(send, "error", errorPayload{Message: err.Error()})
			return
		}
		if res.GameOver {
			s.finishGame(rm, res.WinnerID)
			return
		}
		s.broadcastState(rm)

	case "bs":
		rm.Lock()
		defer rm.Unlock()
		if _, err := rm.Game.Challenge(playerID); err != nil {
			if !errors.Is(err, game.ErrNoRound) {
				s.sendWS(send, "error", errorPayload{Message: err.Error()})
			}
			return
		}
		s.broadcastState(rm)

	case "reveal":
		rm.Lock()
		defer rm.Unlock()
		if err := rm.Game.RevealNext(playerID); err != nil {
			if !errors.Is(err, game.ErrNoRound) {
				s.sendWS(send, "error", errorPayload{Message: err.Error()})
			}
			return
		}
		s.broadcastState(rm)

	case "continue":
		rm.Lock()
		defer rm.Unlock()
		res, err := rm.Game.Acknowledge(playerID)
		if err != nil {
			// Stale acknowledgement, e.g. the round already advanced.
			return
		}
		if res.GameOver {
			s.finishGame(rm, "")
			return
		}
		s.broadcastState(rm)

	default:
		s.sendWS(send, "error", errorPayload{Message: "unknown message type: " + msg.Type})
	}
}

// handleDisconnect removes the player and repairs or tears down the
// room. Runs once per connection, after the read loop exits.
func (s *Server) handleDisconnect(rm *room.Room, playerID string) {
	rm.Lock()
	defer rm.Unlock()
	rm.RemoveConn(playerID)
	res := rm.Game.RemovePlayer(playerID)
	if !res.Removed {
		return
	}
	if res.RoomEmpty {
		s.manager.Remove(rm.Game.Code)
		return
	}
	if res.GameOver {
		s.finishGame(rm, "")
		return
	}
	s.broadcastState(rm)
}

// finishGame broadcasts the final ranking, records it, and discards
// the room. Caller holds the room lock.
func (s *Server) finishGame(rm *room.Room, winnerID string) {
	ranking := rm.Game.Ranking()
	payload := gameEndedPayload{
		RoomCode: rm.Game.Code,
		WinnerID: winnerID,
		Players:  ranking,
	}
	if winnerID == "" && len(ranking) > 0 {
		payload.WinnerID = ranking[0].ID
	}
	for _, ch := range rm.Conns() {
		s.sendWS(ch, "gameEnded", payload)
	}
	s.manager.RecordResult(rm.Game.Code, ranking)
	s.manager.Remove(rm.Game.Code)
	s.log.Info("game ended", zap.String("room", rm.Game.Code))
}

// broadcastState sends each connected player their own view of the
// room. Caller holds the room lock.
func (s *Server) broadcastState(rm *room.Room) {
	for id, ch := range rm.Conns() {
		snap := rm.Game.Snapshot(id)
		s.sendWS(ch, "state", snap)
	}
}

func findPlayer(g *game.Room, id string) *game.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// sendWS queues a message without blocking the room lock. A client
// whose buffer is full loses the message; that only happens when the
// peer has stopped reading, so the drop is logged and the connection
// is left to the read loop's disconnect handling.
func (s *Server) sendWS(send chan []byte, msgType string, payload any) {
	p, _ := json.Marshal(payload)
	msg, _ := json.Marshal(WSMessage{Type: msgType, Payload: p})
	select {
	case send <- msg:
	default:
		s.log.Warn("send buffer full, dropping message", zap.String("type", msgType))
	}
}
