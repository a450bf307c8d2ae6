package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tilegrid/merge2048/game/session"
)

// Client is a thin MCP client that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide tiles on a 4x4 grid. Equal neighbors merge into their sum and score
that many points. Reach the 2048 tile, or just chase a high score.

AVAILABLE TOOLS:
- game_state: Get the current board, score, and high score
- move: Slide the board in a direction (up/down/left/right)
- restart: Start a new game (high score is kept)
- game_instructions: Get the full rules and strategy notes

There is exactly one shared game per server. Moves from browsers and a
physical joystick land on the same board you are playing.`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current 2048 board, score, high score, and whether the game is over",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide the board in a direction; equal neighbors merge and score",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide the board",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Start a new game. The high score is preserved.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full game rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var snap session.Snapshot
	if err := c.apiCall("GET", "/api/state", nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// The intent parameter is a rubber duck; nothing to process.
	_ = intent

	body := map[string]string{"direction": direction}

	var result session.MoveResult
	if err := c.apiCall("POST", "/move", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var snap session.Snapshot
	if err := c.apiCall("POST", "/restart", nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("New game started.\n\n%s", formatSnapshot(&snap))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `2048 - Complete Instructions

GAME OBJECTIVE:
Slide the tiles on a 4x4 grid. When two tiles with the same value collide
they merge into one tile worth their sum, and the sum is added to your
score. The classic goal is to build a 2048 tile, but the game keeps going
until no move can change the board.

MOVE MECHANICS:
- A move slides every tile as far as it can go in the chosen direction.
- Each tile can take part in at most one merge per move: sliding
  [2 2 4] left gives [4 4], never [8].
- After every move that changes the board, a new tile appears on a random
  empty cell: 2 with 90% probability, 4 with 10%.
- A move that changes nothing is legal but wasted; no tile spawns.

GAME OVER:
The game is over when the board is full and no pair of adjacent tiles
(horizontally or vertically) is equal. Use restart to begin again; your
high score carries over.

STRATEGY NOTES:
- Keep your largest tile in a corner and build a gradient toward it.
- Prefer two directions (say left and down) and use the others sparingly.
- A wasted move still lets the board fill up via other input sources, so
  check game_state before long sequences.

SHARED BOARD:
There is one game per server. Browsers, a physical joystick, and MCP
agents all drive the same board, so the state can change between your
calls.

TOOLS:
- game_state: current board, score, high score, game over flag
- move: direction is one of up, down, left, right
- restart: new board, score reset, high score preserved
- game_instructions: this text`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSnapshot(snap *session.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("Board:\n")
	sb.WriteString(formatBoard(snap))
	sb.WriteString(fmt.Sprintf("\nScore: %d\nHigh Score: %d\n", snap.Score, snap.HighScore))

	if snap.GameOver {
		sb.WriteString("\nGAME OVER. Use the restart tool to play again.\n")
	}

	return sb.String()
}

func formatBoard(snap *session.Snapshot) string {
	var sb strings.Builder
	for _, row := range snap.Grid {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(" ")
			}
			if cell == 0 {
				sb.WriteString("   .")
			} else {
				sb.WriteString(fmt.Sprintf("%4d", cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatMoveResult(result *session.MoveResult) string {
	var sb strings.Builder

	if result.Moved {
		sb.WriteString("Move applied")
		if result.ScoreGained > 0 {
			sb.WriteString(fmt.Sprintf(", +%d points", result.ScoreGained))
		}
		sb.WriteString(".\n\n")
	} else {
		sb.WriteString("Move did not change the board.\n\n")
	}

	sb.WriteString(formatSnapshot(&result.Snapshot))
	return sb.String()
}
