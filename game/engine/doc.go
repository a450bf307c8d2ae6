// Package engine provides the core grid logic for the 2048 tile-merge game.
//
// The engine package implements the pure board transformations:
//   - Sliding and merging tiles in the four directions
//   - Tile spawning on empty cells (2 with p=0.9, 4 with p=0.1)
//   - Terminal-state detection (no empty cell, no mergeable pair)
//   - Board construction with the two initial tiles
//
// Core Types:
//
// Board is a fixed 4x4 value matrix where 0 means empty and every nonzero
// cell is a power of two. Direction is a four-variant enum; MoveOutcome
// carries the resulting board, the score gained by merges, and whether the
// board actually changed.
//
// Purity:
//
// Every function takes its inputs by value and returns new values; nothing
// in this package holds state or performs I/O. Randomness is injected via
// *rand.Rand so callers control determinism.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	board := engine.NewBoard(rng)
//
//	outcome, err := board.Move(engine.Left)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if outcome.Changed {
//		board, _ = engine.SpawnTile(outcome.Board, rng)
//	}
package engine
