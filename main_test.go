package main

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetConfigPathDefault(t *testing.T) {
	orig, had := os.LookupEnv("CALIBRATION_FILE")
	defer func() {
		if had {
			os.Setenv("CALIBRATION_FILE", orig)
		} else {
			os.Unsetenv("CALIBRATION_FILE")
		}
	}()

	os.Unsetenv("CALIBRATION_FILE")
	if got := getConfigPathDefault(); got != "calibration.json" {
		t.Errorf("default = %q, want %q", got, "calibration.json")
	}

	os.Setenv("CALIBRATION_FILE", "/etc/merge2048/cal.json")
	if got := getConfigPathDefault(); got != "/etc/merge2048/cal.json" {
		t.Errorf("default = %q, want env override", got)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	orig, had := os.LookupEnv("LOG_LEVEL")
	defer func() {
		if had {
			os.Setenv("LOG_LEVEL", orig)
		} else {
			os.Unsetenv("LOG_LEVEL")
		}
	}()

	os.Unsetenv("LOG_LEVEL")
	if got := newLogger(false).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", got)
	}
	if got := newLogger(true).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}

	// LOG_LEVEL wins over the flag.
	os.Setenv("LOG_LEVEL", "warn")
	if got := newLogger(true).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn from LOG_LEVEL", got)
	}

	// An unparseable value falls back to the flag.
	os.Setenv("LOG_LEVEL", "shouting")
	if got := newLogger(false).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", got)
	}
}

func TestInitializeServices(t *testing.T) {
	svc := initializeServices(zerolog.Nop())
	if svc == nil {
		t.Fatal("initializeServices returned nil")
	}
}
