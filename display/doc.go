// Package display formats and publishes score updates for an external
// score display.
//
// The original deployment drove a 2-line LCD1602 over I2C; hardware drivers
// are out of scope here, so the package defines the Display contract, the
// shared formatting rules (values capped at 9999 before rendering), and a
// zerolog-backed implementation used when no panel is attached.
package display
