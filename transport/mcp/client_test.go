package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tilegrid/merge2048/game/engine"
	"github.com/tilegrid/merge2048/game/session"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expected := session.Snapshot{Score: 12, HighScore: 64}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expected)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	var snap session.Snapshot
	if err := client.apiCall("GET", "/api/state", nil, &snap); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if snap.Score != expected.Score || snap.HighScore != expected.HighScore {
		t.Errorf("got %+v, want %+v", snap, expected)
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api/state", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid direction"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	err := client.apiCall("POST", "/move", map[string]string{"direction": "q"}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 400 response")
	}
	if !strings.Contains(err.Error(), "invalid direction") {
		t.Errorf("Expected server error message, got: %v", err)
	}
}

func TestClient_handleGameState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/state" {
			t.Errorf("Expected GET /api/state, got %s %s", r.Method, r.URL.Path)
		}

		snap := session.Snapshot{
			Grid:      engine.Board{{2, 0, 0, 0}, {0, 4, 0, 0}},
			Score:     6,
			HighScore: 128,
		}
		json.NewEncoder(w).Encode(snap)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	result, err := client.handleGameState(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_state",
			Arguments: map[string]interface{}{},
		},
	})
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	for _, want := range []string{"Score: 6", "High Score: 128"} {
		if !strings.Contains(text.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text.Text)
		}
	}
}

func TestClient_handleMove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/move" {
			t.Errorf("Expected POST /move, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["direction"] != "left" {
			t.Errorf("direction = %q, want %q", body["direction"], "left")
		}

		result := session.MoveResult{
			Snapshot:    session.Snapshot{Score: 4, HighScore: 4},
			Moved:       true,
			ScoreGained: 4,
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	result, err := client.handleMove(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "move",
			Arguments: map[string]interface{}{
				"direction": "left",
				"intent":    "merge the twos",
			},
		},
	})
	if err != nil {
		t.Fatalf("handleMove failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(text.Text, "+4 points") {
		t.Errorf("Expected score gain in result, got: %s", text.Text)
	}
}

func TestClient_handleRestart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/restart" {
			t.Errorf("Expected POST /restart, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(session.Snapshot{HighScore: 256})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	result, err := client.handleRestart(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "restart",
			Arguments: map[string]interface{}{},
		},
	})
	if err != nil {
		t.Fatalf("handleRestart failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(text.Text, "New game started") {
		t.Errorf("Expected restart confirmation, got: %s", text.Text)
	}
	if !strings.Contains(text.Text, "High Score: 256") {
		t.Errorf("Expected preserved high score, got: %s", text.Text)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	})
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"MOVE MECHANICS:",
		"GAME OVER:",
		"at most one merge per move",
		"2 with 90% probability, 4 with 10%",
	}
	for _, want := range expectedContent {
		if !strings.Contains(text.Text, want) {
			t.Errorf("Expected %q in instructions", want)
		}
	}
}

func TestFormatSnapshot_GameOver(t *testing.T) {
	snap := &session.Snapshot{Score: 100, HighScore: 200, GameOver: true}

	result := formatSnapshot(snap)

	if !strings.Contains(result, "GAME OVER") {
		t.Errorf("Expected GAME OVER in result, got: %s", result)
	}
}

func TestFormatBoard(t *testing.T) {
	snap := &session.Snapshot{Grid: engine.Board{{2, 0, 0, 0}}}

	result := formatBoard(snap)

	if !strings.Contains(result, "2") {
		t.Errorf("Expected tile value in board, got: %s", result)
	}
	if !strings.Contains(result, ".") {
		t.Errorf("Expected empty-cell marker in board, got: %s", result)
	}
}

func TestFormatMoveResult_NoChange(t *testing.T) {
	result := formatMoveResult(&session.MoveResult{Moved: false})

	if !strings.Contains(result, "did not change") {
		t.Errorf("Expected no-op message, got: %s", result)
	}
}
