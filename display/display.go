package display

import (
	"fmt"

	"github.com/rs/zerolog"
)

// MaxScore is the largest value the 4-digit score panel can render. Scores
// above it are clamped before formatting, never truncated mid-digit.
const MaxScore = 9999

// Display receives score updates after every state mutation. Implementations
// must be safe for calls from multiple goroutines; the caller never invokes
// them while holding game-state locks.
type Display interface {
	// ShowScores renders the current and high score, each capped at the
	// panel maximum.
	ShowScores(score, high int) error

	// Clear blanks the panel.
	Clear() error

	// Close releases the underlying device.
	Close() error
}

// Cap clamps a score to the displayable maximum.
func Cap(v int) int {
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// FormatLines renders the two panel lines exactly as the LCD layout expects.
func FormatLines(score, high int) (string, string) {
	return fmt.Sprintf("Score: %d", Cap(score)),
		fmt.Sprintf("High Score: %d", Cap(high))
}

// LogDisplay writes score updates to the structured log. It is the default
// Display when no physical panel is attached.
type LogDisplay struct {
	log zerolog.Logger
}

// NewLogDisplay creates a log-backed display.
func NewLogDisplay(log zerolog.Logger) *LogDisplay {
	return &LogDisplay{log: log}
}

// ShowScores logs both panel lines at debug level.
func (d *LogDisplay) ShowScores(score, high int) error {
	line1, line2 := FormatLines(score, high)
	d.log.Debug().Str("line1", line1).Str("line2", line2).Msg("display update")
	return nil
}

// Clear is a no-op for the log-backed display.
func (d *LogDisplay) Clear() error { return nil }

// Close is a no-op for the log-backed display.
func (d *LogDisplay) Close() error { return nil }
