package engine

import (
	"errors"
	"fmt"
)

// Size is the board edge length. The game is always played on a 4x4 grid.
const Size = 4

var (
	ErrBoardFull        = errors.New("no empty cell to spawn a tile on")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Board is a square matrix of tile values. A cell holds 0 when empty and a
// power of two (>= 2) otherwise. Board is a value type: copies are cheap and
// transforms never mutate their input.
type Board [Size][Size]int

// Direction identifies one of the four possible moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Directions lists all four directions in a stable order, useful for
// exhaustive checks such as terminal-state cross-validation.
var Directions = [4]Direction{Up, Down, Left, Right}

// ParseDirection maps a wire symbol to a Direction. It accepts the long
// names used by the JSON API and the single-key form used by the browser
// keyboard handler (w/a/s/d).
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// MoveOutcome is the result of applying a move to a board.
type MoveOutcome struct {
	// Board is the board after sliding and merging. No tile has been
	// spawned on it yet; spawning is the caller's decision based on Changed.
	Board Board `json:"board"`

	// ScoreGained is the sum of all tile values created by merges during
	// this move.
	ScoreGained int `json:"score_gained"`

	// Changed reports whether Board differs from the input board. A move
	// that only shifts tiles counts as changed even when ScoreGained is 0.
	Changed bool `json:"changed"`
}
