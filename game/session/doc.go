// Package session provides the game session coordinator for the 2048 server.
//
// The session package implements:
//   - Ownership of the single mutable game state (board, score, high score)
//   - Serialized mutation through a mutex so the engine stays pure under
//     concurrent callers
//   - Snapshot reads with the terminal flag recomputed on every access
//
// Core Types:
//
// Coordinator is the process-wide state machine. It exposes exactly three
// operations: ApplyMove, Restart, and Snapshot. Any number of goroutines
// (HTTP handlers, the joystick poller) may call them concurrently; the
// internal lock is held only for the duration of a single call and never
// across I/O.
//
// Restart is unconditional by design: gating restart on a terminal board is
// the input driver's responsibility, not the coordinator's.
//
// Usage:
//
//	coord := session.NewCoordinator()
//
//	result := coord.ApplyMove(engine.Left)
//	if result.Moved {
//		// a tile was spawned and the score advanced
//	}
//
//	snap := coord.Snapshot()
//	fmt.Println(snap.Score, snap.HighScore, snap.GameOver)
package session
