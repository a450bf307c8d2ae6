// Package api provides the HTTP layer for the 2048 server.
//
// The api package implements:
//   - The playable HTML page (grid, scores, keyboard handling)
//   - REST endpoints for moves, restart, and state polling
//   - The combined poll/move endpoint used by remote input sources
//   - WebSocket upgrade into the broadcast hub
//
// Endpoints:
//
//	GET  /           HTML game page
//	POST /move       apply a move; body carries direction (form or JSON)
//	POST /restart    start a new game, high score preserved
//	GET  /api/state  current snapshot as JSON
//	GET  /api/poll   snapshot; optional ?direction= applies a move first
//	GET  /ws         WebSocket upgrade (snapshot push on every change)
//	GET  /health     liveness probe
//
// Request/Response Format:
//
// JSON endpoints return the snapshot shape
// {grid, score, high_score, game_over}; /move additionally reports
// {moved, score_gained}. Invalid directions get a 400 from /move but are
// silently ignored by /api/poll, which always answers with the current
// snapshot so dumb pollers cannot wedge the game.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{"error": "error message"}
package api
