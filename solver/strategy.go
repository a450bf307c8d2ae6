package main

// CornerStrategy is the classic "keep the big tile in a corner" heuristic.
// It prefers down and left so tiles pile into the bottom-left corner, and
// only reaches for right or up when the preferred moves stop changing the
// board. After any successful move the preference order resets.
type CornerStrategy struct {
	order  []string
	wasted map[string]bool
}

// NewCornerStrategy creates the strategy with the bottom-left preference.
func NewCornerStrategy() *CornerStrategy {
	return &CornerStrategy{
		order:  []string{"down", "left", "right", "up"},
		wasted: make(map[string]bool),
	}
}

// Next returns the best direction to try, or "" when every direction has
// been a no-op since the last successful move (the board is likely
// terminal).
func (s *CornerStrategy) Next() string {
	for _, direction := range s.order {
		if !s.wasted[direction] {
			return direction
		}
	}
	return ""
}

// Record feeds back whether a move changed the board.
func (s *CornerStrategy) Record(direction string, moved bool) {
	if moved {
		s.Reset()
		return
	}
	// The same direction stays useless until some other move reshapes the
	// board.
	s.wasted[direction] = true
}

// Reset clears the wasted set, used after a successful move or a restart.
func (s *CornerStrategy) Reset() {
	s.wasted = make(map[string]bool)
}
