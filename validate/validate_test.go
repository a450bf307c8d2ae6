package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCalibration(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "calibration_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write calibration: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateFile_ValidCalibration(t *testing.T) {
	path := writeCalibration(t, `{
		"joystick": {
			"axis_x_channel": 0,
			"axis_y_channel": 1,
			"threshold_low": 50,
			"threshold_high": 250,
			"poll_interval_ms": 100
		},
		"display": {
			"max_score": 9999
		}
	}`)

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("Expected valid calibration, but got errors: %v", result.Notes)
	}
	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateFile_InvalidJSON(t *testing.T) {
	path := writeCalibration(t, `{"joystick": invalid json}`)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestValidateFile_MissingFile(t *testing.T) {
	result := validateFile(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateFile_InvertedThresholds(t *testing.T) {
	path := writeCalibration(t, `{
		"joystick": {"threshold_low": 250, "threshold_high": 50}
	}`)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for inverted thresholds")
	}
}

func TestValidateFile_ThresholdBeyondADC(t *testing.T) {
	path := writeCalibration(t, `{
		"joystick": {"threshold_low": 50, "threshold_high": 300}
	}`)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for threshold beyond ADC range")
	}

	found := false
	for _, note := range result.Notes {
		if strings.Contains(note, "ADC maximum") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected ADC range message, got: %v", result.Notes)
	}
}

func TestValidateFile_FastPollWarnsButPasses(t *testing.T) {
	path := writeCalibration(t, `{
		"joystick": {"poll_interval_ms": 5}
	}`)

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("A fast poll interval should warn, not fail: %v", result.Notes)
	}

	found := false
	for _, note := range result.Notes {
		if strings.Contains(note, "I2C bus") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected poll interval warning, got: %v", result.Notes)
	}
}

func TestValidateFile_OversizedDisplayLimitWarnsButPasses(t *testing.T) {
	path := writeCalibration(t, `{
		"display": {"max_score": 100000}
	}`)

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("An oversized display limit should warn, not fail: %v", result.Notes)
	}

	found := false
	for _, note := range result.Notes {
		if strings.Contains(note, "truncate") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected display truncation warning, got: %v", result.Notes)
	}
}

func TestValidateFile_DuplicateAxisChannels(t *testing.T) {
	path := writeCalibration(t, `{
		"joystick": {"axis_x_channel": 1, "axis_y_channel": 1}
	}`)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for duplicate axis channels")
	}
}
