package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/tilegrid/merge2048/game/engine"
)

// Snapshot is an immutable read of the game state at a point in time. The
// JSON field names match the poll payload served by the HTTP layer.
type Snapshot struct {
	Grid      engine.Board `json:"grid"`
	Score     int          `json:"score"`
	HighScore int          `json:"high_score"`
	GameOver  bool         `json:"game_over"`
}

// MoveResult is the outcome of ApplyMove: the post-move snapshot plus
// whether the board changed and how much score the move gained.
type MoveResult struct {
	Snapshot
	Moved       bool `json:"moved"`
	ScoreGained int  `json:"score_gained"`
}

// Coordinator owns the single game session. All state transitions go
// through its three entry points, which serialize on an internal mutex.
type Coordinator struct {
	mu        sync.Mutex
	board     engine.Board
	score     int
	highScore int
	rng       *rand.Rand
}

// NewCoordinator creates a coordinator with a fresh board (two tiles
// spawned) and a time-seeded RNG.
func NewCoordinator() *Coordinator {
	return NewCoordinatorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewCoordinatorWithRand creates a coordinator using the provided RNG.
// Tests use this to make spawn placement deterministic.
func NewCoordinatorWithRand(rng *rand.Rand) *Coordinator {
	return &Coordinator{
		board: engine.NewBoard(rng),
		rng:   rng,
	}
}

// ApplyMove slides the board in the given direction. When the board
// changed, a new tile is spawned, the score advances by the merge gain, and
// the high score is raised if exceeded. When nothing moved, state is left
// untouched. The returned result always carries a consistent snapshot.
func (c *Coordinator) ApplyMove(d engine.Direction) MoveResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, err := c.board.Move(d)
	if err != nil {
		// Direction values are validated at the boundary; an out-of-range
		// enum here is a programming error and must not mutate state.
		return MoveResult{Snapshot: c.snapshotLocked()}
	}

	if out.Changed {
		board, err := engine.SpawnTile(out.Board, c.rng)
		if err != nil {
			// Unreachable if Changed held: a changed move leaves at least
			// one empty cell behind.
			board = out.Board
		}
		c.board = board
		c.score += out.ScoreGained
		if c.score > c.highScore {
			c.highScore = c.score
		}
	}

	return MoveResult{
		Snapshot:    c.snapshotLocked(),
		Moved:       out.Changed,
		ScoreGained: out.ScoreGained,
	}
}

// Restart replaces the board with a fresh one and resets the score to zero.
// The high score survives. Restart never checks for a terminal board; that
// gate belongs to the input source.
func (c *Coordinator) Restart() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.board = engine.NewBoard(c.rng)
	c.score = 0
	return c.snapshotLocked()
}

// Snapshot returns a read-only view of the current state. The terminal flag
// is recomputed from the board on every call, never cached.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		Grid:      c.board,
		Score:     c.score,
		HighScore: c.highScore,
		GameOver:  c.board.IsTerminal(),
	}
}
