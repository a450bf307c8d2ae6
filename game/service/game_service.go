package service

import (
	"context"

	"github.com/tilegrid/merge2048/game/engine"
	"github.com/tilegrid/merge2048/game/session"
)

// ErrInvalidDirection is returned by Move when the direction symbol is not
// one of the four recognized values. State is left untouched.
var ErrInvalidDirection = engine.ErrInvalidDirection

// GameService defines the game operations exposed to all transports.
type GameService interface {
	// Move parses the direction symbol and applies it to the game. Invalid
	// symbols fail with ErrInvalidDirection and do not mutate state.
	Move(ctx context.Context, direction string) (*session.MoveResult, error)

	// Restart starts a new game, preserving the high score.
	Restart(ctx context.Context) (*session.Snapshot, error)

	// State returns the current snapshot with a fresh terminal flag.
	State(ctx context.Context) (*session.Snapshot, error)
}
