package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"liarspoker/internal/game"
	"liarspoker/internal/room"
	"liarspoker/internal/storage"
)

type testEnv struct {
	ts  *httptest.Server
	mgr *room.Manager
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mgr := room.NewManager(store, zap.NewNop())
	srv := New(mgr, zap.NewNop())
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, mgr: mgr}
}

func timeoutCtx(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func wsURL(ts *httptest.Server) string {
	return strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws"
}

func wsDial(ctx context.Context, t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, wsURL(ts), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func wsSend(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	p, _ := json.Marshal(payload)
	data, _ := json.Marshal(WSMessage{Type: msgType, Payload: p})
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("ws write: %v", err)
	}
}

func wsRead(ctx context.Context, t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal ws message: %v", err)
	}
	return msg
}

// wsReadType skips broadcasts until a message of the wanted type
// arrives.
func wsReadType(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType string) WSMessage {
	t.Helper()
	for {
		msg := wsRead(ctx, t, conn)
		if msg.Type == msgType {
			return msg
		}
		if msg.Type == "error" {
			var ep errorPayload
			json.Unmarshal(msg.Payload, &ep)
			t.Fatalf("unexpected error waiting for %s: %s", msgType, ep.Message)
		}
	}
}

// wsReadState reads state broadcasts until cond is satisfied.
func wsReadState(ctx context.Context, t *testing.T, conn *websocket.Conn, cond func(game.Snapshot) bool) game.Snapshot {
	t.Helper()
	for {
		msg := wsReadType(ctx, t, conn, "state")
		var snap game.Snapshot
		if err := json.Unmarshal(msg.Payload, &snap); err != nil {
			t.Fatalf("unmarshal snapshot: %v", err)
		}
		if cond(snap) {
			return snap
		}
	}
}

// enterRoom creates or joins and returns the assigned player id plus
// the room code.
func enterRoom(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType string, payload any) (playerID, roomCode string) {
	t.Helper()
	wsSend(ctx, t, conn, msgType, payload)
	msg := wsReadType(ctx, t, conn, "joined")
	var jp joinedPayload
	if err := json.Unmarshal(msg.Payload, &jp); err != nil {
		t.Fatalf("unmarshal joined payload: %v", err)
	}
	return jp.PlayerID, jp.RoomCode
}
