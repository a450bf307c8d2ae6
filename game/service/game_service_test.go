package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tilegrid/merge2048/game/session"
)

// recordingDisplay captures score updates for assertions.
type recordingDisplay struct {
	mu      sync.Mutex
	updates [][2]int
	fail    error
}

func (d *recordingDisplay) ShowScores(score, high int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail != nil {
		return d.fail
	}
	d.updates = append(d.updates, [2]int{score, high})
	return nil
}

func (d *recordingDisplay) Clear() error { return nil }
func (d *recordingDisplay) Close() error { return nil }

func (d *recordingDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.updates)
}

func newTestService(seed int64) (GameService, *recordingDisplay) {
	coord := session.NewCoordinatorWithRand(rand.New(rand.NewSource(seed)))
	panel := &recordingDisplay{}
	return NewGameService(coord, panel, zerolog.Nop()), panel
}

func TestMove_InvalidDirection(t *testing.T) {
	svc, panel := newTestService(1)

	before, err := svc.State(context.Background())
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}

	_, err = svc.Move(context.Background(), "diagonal")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("Move with bad symbol = %v, want ErrInvalidDirection", err)
	}

	after, err := svc.State(context.Background())
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if *after != *before {
		t.Error("invalid direction must not mutate state")
	}
	if panel.count() != 0 {
		t.Error("invalid direction must not update the display")
	}
}

func TestMove_AcceptsLongAndKeySymbols(t *testing.T) {
	svc, _ := newTestService(2)

	for _, symbol := range []string{"up", "down", "left", "right", "w", "a", "s", "d"} {
		if _, err := svc.Move(context.Background(), symbol); err != nil {
			t.Errorf("Move(%q) returned error: %v", symbol, err)
		}
	}
}

func TestMove_UpdatesDisplayOnlyWhenMoved(t *testing.T) {
	svc, panel := newTestService(3)

	// Drive moves until one actually changes the board.
	moved := false
	for _, symbol := range []string{"left", "up", "right", "down"} {
		result, err := svc.Move(context.Background(), symbol)
		if err != nil {
			t.Fatalf("Move(%q) returned error: %v", symbol, err)
		}
		if result.Moved {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no move changed a fresh two-tile board")
	}
	if panel.count() == 0 {
		t.Error("a successful move must push a display update")
	}
}

func TestRestart_ResetsScoreAndUpdatesDisplay(t *testing.T) {
	svc, panel := newTestService(4)

	snap, err := svc.Restart(context.Background())
	if err != nil {
		t.Fatalf("Restart returned error: %v", err)
	}
	if snap.Score != 0 {
		t.Errorf("score after restart = %d, want 0", snap.Score)
	}
	if panel.count() != 1 {
		t.Errorf("display updates after restart = %d, want 1", panel.count())
	}
}

func TestMove_DisplayFailureIsNotFatal(t *testing.T) {
	coord := session.NewCoordinatorWithRand(rand.New(rand.NewSource(5)))
	panel := &recordingDisplay{fail: errors.New("panel offline")}
	svc := NewGameService(coord, panel, zerolog.Nop())

	if _, err := svc.Move(context.Background(), "left"); err != nil {
		t.Errorf("Move must not propagate display errors, got %v", err)
	}
}

func TestNewGameService_NilDisplay(t *testing.T) {
	coord := session.NewCoordinatorWithRand(rand.New(rand.NewSource(6)))
	svc := NewGameService(coord, nil, zerolog.Nop())

	if _, err := svc.Move(context.Background(), "left"); err != nil {
		t.Errorf("Move with nil display returned error: %v", err)
	}
	if _, err := svc.Restart(context.Background()); err != nil {
		t.Errorf("Restart with nil display returned error: %v", err)
	}
}
