package main

import "testing"

func TestCornerStrategyPrefersDown(t *testing.T) {
	s := NewCornerStrategy()

	if got := s.Next(); got != "down" {
		t.Errorf("Next() = %q, want %q", got, "down")
	}
}

func TestCornerStrategyFallsThroughOnWastedMoves(t *testing.T) {
	s := NewCornerStrategy()

	s.Record("down", false)
	if got := s.Next(); got != "left" {
		t.Errorf("Next() = %q, want %q", got, "left")
	}

	s.Record("left", false)
	if got := s.Next(); got != "right" {
		t.Errorf("Next() = %q, want %q", got, "right")
	}

	s.Record("right", false)
	if got := s.Next(); got != "up" {
		t.Errorf("Next() = %q, want %q", got, "up")
	}
}

func TestCornerStrategyExhaustedReturnsEmpty(t *testing.T) {
	s := NewCornerStrategy()

	for _, d := range []string{"down", "left", "right", "up"} {
		s.Record(d, false)
	}

	if got := s.Next(); got != "" {
		t.Errorf("Next() = %q, want empty when exhausted", got)
	}
}

func TestCornerStrategyResetsAfterSuccessfulMove(t *testing.T) {
	s := NewCornerStrategy()

	s.Record("down", false)
	s.Record("left", false)
	// A successful move reshapes the board, so down may work again.
	s.Record("right", true)

	if got := s.Next(); got != "down" {
		t.Errorf("Next() = %q, want %q after reset", got, "down")
	}
}
