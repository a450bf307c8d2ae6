package engine

// MergeLine compacts and merges a single line (row or column) toward index 0.
// Zeros are removed, then each cell is merged with its immediate right
// neighbor at most once: the left cell doubles, the neighbor is zeroed and
// takes no further part in the pass, so [2,2,2,0] becomes [4,2,0,0] rather
// than chaining into [8,0,0,0]. The result is compacted again and zero-padded
// back to Size. The second return value is the sum of all values created by
// merges in this call.
func MergeLine(line [Size]int) ([Size]int, int) {
	compact := make([]int, 0, Size)
	for _, v := range line {
		if v != 0 {
			compact = append(compact, v)
		}
	}

	gained := 0
	for i := 0; i+1 < len(compact); i++ {
		if compact[i] != 0 && compact[i] == compact[i+1] {
			compact[i] *= 2
			compact[i+1] = 0
			gained += compact[i]
		}
	}

	var out [Size]int
	w := 0
	for _, v := range compact {
		if v != 0 {
			out[w] = v
			w++
		}
	}
	return out, gained
}

// Move slides and merges the board in the given direction. Left applies
// MergeLine to each row; right reverses each row around the merge; up and
// down transpose the board and reuse the horizontal variants. Changed is
// determined by comparing the output board against the input directly.
func (b Board) Move(d Direction) (MoveOutcome, error) {
	var next Board
	var gained int

	switch d {
	case Left:
		next, gained = b.moveLeft()
	case Right:
		next, gained = b.moveRight()
	case Up:
		t, g := b.transpose().moveLeft()
		next, gained = t.transpose(), g
	case Down:
		t, g := b.transpose().moveRight()
		next, gained = t.transpose(), g
	default:
		return MoveOutcome{}, ErrInvalidDirection
	}

	return MoveOutcome{
		Board:       next,
		ScoreGained: gained,
		Changed:     next != b,
	}, nil
}

func (b Board) moveLeft() (Board, int) {
	var next Board
	total := 0
	for r := 0; r < Size; r++ {
		merged, gained := MergeLine(b[r])
		next[r] = merged
		total += gained
	}
	return next, total
}

func (b Board) moveRight() (Board, int) {
	var next Board
	total := 0
	for r := 0; r < Size; r++ {
		merged, gained := MergeLine(reverse(b[r]))
		next[r] = reverse(merged)
		total += gained
	}
	return next, total
}

func (b Board) transpose() Board {
	var t Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			t[c][r] = b[r][c]
		}
	}
	return t
}

func reverse(line [Size]int) [Size]int {
	var out [Size]int
	for i, v := range line {
		out[Size-1-i] = v
	}
	return out
}
