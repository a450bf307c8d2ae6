package engine

import "math/rand"

// fourTileChance is the probability that a spawned tile is a 4 instead of a 2.
const fourTileChance = 0.1

// NewBoard returns an empty board with two tiles spawned on it.
func NewBoard(rng *rand.Rand) Board {
	var b Board
	b, _ = SpawnTile(b, rng)
	b, _ = SpawnTile(b, rng)
	return b
}

// SpawnTile places a new tile on a uniformly chosen empty cell: 2 with
// probability 0.9, 4 with probability 0.1. Callers must only spawn after a
// move that changed the board, so a full board is a contract violation and
// returns ErrBoardFull.
func SpawnTile(b Board, rng *rand.Rand) (Board, error) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b, ErrBoardFull
	}

	cell := empty[rng.Intn(len(empty))]
	value := 2
	if rng.Float64() >= 1-fourTileChance {
		value = 4
	}
	b[cell[0]][cell[1]] = value
	return b, nil
}

// EmptyCells returns the {row, col} coordinates of every empty cell.
func (b Board) EmptyCells() [][2]int {
	cells := make([][2]int, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// IsTerminal reports whether no move can change the board: every cell is
// occupied and no two horizontally or vertically adjacent cells are equal.
func (b Board) IsTerminal() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c+1 < Size; c++ {
			x, y := b[r][c], b[r][c+1]
			if x == y || x == 0 || y == 0 {
				return false
			}
		}
	}
	t := b.transpose()
	for r := 0; r < Size; r++ {
		for c := 0; c+1 < Size; c++ {
			x, y := t[r][c], t[r][c+1]
			if x == y || x == 0 || y == 0 {
				return false
			}
		}
	}
	return true
}

// Sum returns the total value of all tiles on the board. It backs the
// conservation checks in tests and the autoplay statistics.
func (b Board) Sum() int {
	total := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			total += b[r][c]
		}
	}
	return total
}

// MaxTile returns the largest tile value on the board, or 0 when empty.
func (b Board) MaxTile() int {
	max := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] > max {
				max = b[r][c]
			}
		}
	}
	return max
}
