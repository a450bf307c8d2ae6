// Command validate checks hardware calibration JSON files before they are
// deployed to a board. It verifies:
//   - JSON structure
//   - Joystick axis channel assignments (distinct, non-negative)
//   - Deflection thresholds (low below high, both sane for an 8-bit ADC)
//   - Poll interval (positive, warns when too fast for the I2C bus)
//   - Display score limit (positive, warns when it exceeds four digits)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilegrid/merge2048/config"
)

// adcMax is the largest value an 8-bit ADC can report.
const adcMax = 255

// minSafePollIntervalMS is the fastest sampling rate the I2C bus handles
// reliably with both the ADC and the LCD attached.
const minSafePollIntervalMS = 20

// fourDigitMax is the largest score a 16x2 character display renders
// without truncating the "High Score:" line.
const fourDigitMax = 9999

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

// validateFile loads and validates a single calibration JSON file. It runs
// the structural checks from the config package, then adds hardware sanity
// warnings the runtime does not enforce.
func validateFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
		Notes: []string{},
	}

	if _, err := os.Stat(filePath); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	cfg, err := config.Load(filePath)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, err.Error())
		return result
	}

	j := cfg.Joystick

	// Thresholds beyond the ADC range can never trigger, which silently
	// disables an axis direction.
	if j.ThresholdHigh > adcMax {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf(
			"threshold_high (%d) exceeds the ADC maximum (%d); that direction can never fire",
			j.ThresholdHigh, adcMax))
	}

	if j.PollIntervalMS < minSafePollIntervalMS {
		result.Notes = append(result.Notes, fmt.Sprintf(
			"⚠ poll_interval_ms (%d) is below %dms; the I2C bus may not keep up",
			j.PollIntervalMS, minSafePollIntervalMS))
	}

	if cfg.Display.MaxScore > fourDigitMax {
		result.Notes = append(result.Notes, fmt.Sprintf(
			"⚠ display max_score (%d) needs more than four digits; a 16x2 LCD will truncate",
			cfg.Display.MaxScore))
	}

	if result.Valid {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Axes: X on channel %d, Y on channel %d", j.AxisXChannel, j.AxisYChannel))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Thresholds: %d / %d", j.ThresholdLow, j.ThresholdHigh))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Poll interval: %dms", j.PollIntervalMS))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Display limit: %d", cfg.Display.MaxScore))
	}

	return result
}

// main validates the files named on the command line, or every *.json file
// in the current directory when none are given. It prints a report per file
// and exits non-zero if any are invalid.
func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob("*.json")
		if err != nil || len(files) == 0 {
			fmt.Println("No calibration files to validate")
			os.Exit(1)
		}
	}

	allValid := true
	for _, file := range files {
		result := validateFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, note := range result.Notes {
				if !strings.HasPrefix(note, "✓") {
					fmt.Println("  ❌ " + note)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All calibration files are valid!")
	} else {
		fmt.Println("❌ Some calibration files have errors")
		os.Exit(1)
	}
}
