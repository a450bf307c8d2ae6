package main

import (
	"math/rand"
	"testing"
)

func TestPlayGameFinishes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	stats := playGame(rng, 10000)

	if stats.Moves == 0 {
		t.Error("expected at least one move")
	}
	if stats.MaxTile < 2 {
		t.Errorf("max tile = %d, want at least 2", stats.MaxTile)
	}
	if stats.MaxTile&(stats.MaxTile-1) != 0 {
		t.Errorf("max tile %d is not a power of two", stats.MaxTile)
	}
	if stats.Score < 0 {
		t.Errorf("score = %d, want non-negative", stats.Score)
	}
}

func TestPlayGameRespectsMoveLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	stats := playGame(rng, 10)

	if stats.Moves > 10 {
		t.Errorf("moves = %d, want at most 10", stats.Moves)
	}
}

func TestPlayGameDeterministicForSeed(t *testing.T) {
	a := playGame(rand.New(rand.NewSource(7)), 10000)
	b := playGame(rand.New(rand.NewSource(7)), 10000)

	if a != b {
		t.Errorf("same seed gave different games: %+v vs %+v", a, b)
	}
}

func TestPlayGameScoreTracksMerges(t *testing.T) {
	// Over many random games, a zero total score would mean merges never
	// happen, which random play makes effectively impossible.
	rng := rand.New(rand.NewSource(3))

	total := 0
	for i := 0; i < 5; i++ {
		total += playGame(rng, 10000).Score
	}

	if total == 0 {
		t.Error("five random games produced no score at all")
	}
}
