// Package config holds the hardware calibration settings for the server:
// which ADC channels the joystick axes sit on, the deflection thresholds,
// the poll interval, and the largest score the external display can show.
//
// Settings load from a JSON file. A missing file is not an error; the
// defaults match the reference wiring, so a plain `go run .` works with no
// config on disk.
package config
