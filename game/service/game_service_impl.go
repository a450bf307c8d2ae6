package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tilegrid/merge2048/display"
	"github.com/tilegrid/merge2048/game/engine"
	"github.com/tilegrid/merge2048/game/session"
)

// gameService implements GameService on top of the session coordinator.
type gameService struct {
	coord *session.Coordinator
	panel display.Display
	log   zerolog.Logger
}

// NewGameService creates the game service. The display may be nil when no
// score panel is wired.
func NewGameService(coord *session.Coordinator, panel display.Display, log zerolog.Logger) GameService {
	return &gameService{
		coord: coord,
		panel: panel,
		log:   log,
	}
}

// Move validates the direction at the boundary, applies it, and publishes
// the new scores when the board changed.
func (s *gameService) Move(ctx context.Context, direction string) (*session.MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	result := s.coord.ApplyMove(dir)

	if result.Moved {
		s.log.Debug().
			Str("direction", dir.String()).
			Int("score_gained", result.ScoreGained).
			Int("score", result.Score).
			Bool("game_over", result.GameOver).
			Msg("move applied")
		s.updateDisplay(result.Score, result.HighScore)
	}

	return &result, nil
}

// Restart replaces the board and resets the score; the high score survives.
func (s *gameService) Restart(ctx context.Context) (*session.Snapshot, error) {
	snap := s.coord.Restart()
	s.log.Info().Int("high_score", snap.HighScore).Msg("game restarted")
	s.updateDisplay(snap.Score, snap.HighScore)
	return &snap, nil
}

// State returns the current snapshot.
func (s *gameService) State(ctx context.Context) (*session.Snapshot, error) {
	snap := s.coord.Snapshot()
	return &snap, nil
}

// updateDisplay pushes the score pair to the panel. Panel failures are
// logged and swallowed; the game never depends on the display.
func (s *gameService) updateDisplay(score, high int) {
	if s.panel == nil {
		return
	}
	if err := s.panel.ShowScores(score, high); err != nil {
		s.log.Warn().Err(err).Msg("display update failed")
	}
}
