package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tilegrid/merge2048/game/session"
)

func TestNewHub(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubDropClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := &Client{hub: hub, send: make(chan []byte, 1)}

	hub.clients[client] = true
	hub.dropClient(client)

	if len(hub.clients) != 0 {
		t.Errorf("expected 0 clients after drop, got %d", len(hub.clients))
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed after drop")
	}

	// Dropping an unknown client is a no-op.
	hub.dropClient(client)
}

func TestHubBroadcastSnapshot(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Give the register message time to land before broadcasting.
	time.Sleep(50 * time.Millisecond)

	snap := &session.Snapshot{Score: 42, HighScore: 64}
	hub.BroadcastSnapshot(snap)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Event != "state_update" {
		t.Errorf("event = %q, want %q", msg.Event, "state_update")
	}
	if msg.Snapshot == nil || msg.Snapshot.Score != 42 || msg.Snapshot.HighScore != 64 {
		t.Errorf("snapshot payload = %+v, want score 42 / high 64", msg.Snapshot)
	}
}

func TestHubRunStopsOnContextCancel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop after context cancellation")
	}
}
