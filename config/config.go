package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// JoystickConfig calibrates the analog stick.
type JoystickConfig struct {
	AxisXChannel   int `json:"axis_x_channel"`
	AxisYChannel   int `json:"axis_y_channel"`
	ThresholdLow   int `json:"threshold_low"`
	ThresholdHigh  int `json:"threshold_high"`
	PollIntervalMS int `json:"poll_interval_ms"`
}

// DisplayConfig calibrates the external score display.
type DisplayConfig struct {
	// MaxScore is the largest value the display can render; higher scores
	// are clamped to it.
	MaxScore int `json:"max_score"`
}

// Config is the full calibration file.
type Config struct {
	Joystick JoystickConfig `json:"joystick"`
	Display  DisplayConfig  `json:"display"`
}

// Default returns the calibration for the reference wiring: a two-axis
// stick on an 8-bit ADC and a four-digit score display.
func Default() *Config {
	return &Config{
		Joystick: JoystickConfig{
			AxisXChannel:   0,
			AxisYChannel:   1,
			ThresholdLow:   50,
			ThresholdHigh:  250,
			PollIntervalMS: 100,
		},
		Display: DisplayConfig{
			MaxScore: 9999,
		},
	}
}

// Load reads a calibration file. An empty path or a missing file yields
// the defaults; a file that exists but does not parse or validate is an
// error, since silently ignoring a present config hides wiring mistakes.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields absent from the file keep their defaults.
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the calibration is usable.
func (c *Config) Validate() error {
	j := c.Joystick

	if j.AxisXChannel < 0 || j.AxisYChannel < 0 {
		return fmt.Errorf("%w: axis channels must be non-negative", ErrInvalidConfig)
	}
	if j.AxisXChannel == j.AxisYChannel {
		return fmt.Errorf("%w: axis channels must differ", ErrInvalidConfig)
	}
	if j.ThresholdLow < 0 {
		return fmt.Errorf("%w: threshold_low must be non-negative", ErrInvalidConfig)
	}
	if j.ThresholdLow >= j.ThresholdHigh {
		return fmt.Errorf("%w: threshold_low (%d) must be below threshold_high (%d)",
			ErrInvalidConfig, j.ThresholdLow, j.ThresholdHigh)
	}
	if j.PollIntervalMS <= 0 {
		return fmt.Errorf("%w: poll_interval_ms must be positive", ErrInvalidConfig)
	}

	if c.Display.MaxScore <= 0 {
		return fmt.Errorf("%w: display max_score must be positive", ErrInvalidConfig)
	}

	return nil
}

// PollInterval returns the joystick sampling period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Joystick.PollIntervalMS) * time.Millisecond
}
