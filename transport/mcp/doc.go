// Package mcp provides a Model Context Protocol interface to the 2048 server.
//
// The package is a thin MCP client that proxies every tool call to the REST
// API, so AI agents and browsers always see the same single game.
//
// MCP Tools:
//   - game_state: get the current board, score, and high score
//   - move: apply one move (up/down/left/right)
//   - restart: start a new game, high score preserved
//   - game_instructions: rules and strategy notes for agents
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	http.Handle("/mcp", mcpHandlerFor(client.GetMCPServer()))
package mcp
