// Package joystick turns an analog joystick into game moves.
//
// A Poller samples the device on a fixed interval and maps axis deflection
// to directions: pushing past the low threshold on an axis means left/up,
// past the high threshold means right/down. A direction is forwarded to the
// game service only on the sample where it first appears, so holding the
// stick produces one move, not one per tick. The stick button starts a new
// game, but only once the current one is over.
//
// Device is the hardware seam. Detect probes for supported hardware and
// returns ErrNoDevice when none is attached, which lets the server run
// keyboard-only on an ordinary machine.
package joystick
