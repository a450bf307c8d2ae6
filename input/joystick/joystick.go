package joystick

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tilegrid/merge2048/game/service"
)

// ErrNoDevice is returned by Detect when no supported joystick hardware is
// attached.
var ErrNoDevice = errors.New("joystick: no supported device detected")

// Device is one analog joystick. Axis reads return the raw ADC value for a
// channel; the button is the stick's own press switch.
type Device interface {
	ReadAxis(channel int) (int, error)
	ButtonPressed() (bool, error)
	Close() error
}

// Detect probes for supported joystick hardware. The server runs on
// ordinary machines far more often than on a board with an ADC wired up,
// so no bus probing is attempted and callers are expected to treat
// ErrNoDevice as "keyboard only".
func Detect() (Device, error) {
	return nil, ErrNoDevice
}

// Options configures how a Poller samples and interprets the device.
type Options struct {
	// ADC channels the axes are wired to.
	AxisXChannel int
	AxisYChannel int

	// Axis values at or below ThresholdLow deflect toward left/up, at or
	// above ThresholdHigh toward right/down. Values between are neutral.
	ThresholdLow  int
	ThresholdHigh int

	// How often the device is sampled.
	PollInterval time.Duration
}

// DefaultOptions matches the wiring the game was built for: a two-axis
// stick on an 8-bit ADC, sampled ten times a second.
func DefaultOptions() Options {
	return Options{
		AxisXChannel:  0,
		AxisYChannel:  1,
		ThresholdLow:  50,
		ThresholdHigh: 250,
		PollInterval:  100 * time.Millisecond,
	}
}

// Poller samples a Device and feeds moves into the game service.
type Poller struct {
	device  Device
	service service.GameService
	opts    Options
	log     zerolog.Logger

	// Direction seen on the previous sample, "" when neutral. A move is
	// only sent on the sample where the direction changes, so a held
	// stick does not repeat.
	prev string
}

// NewPoller creates a poller over the given device.
func NewPoller(device Device, gameService service.GameService, opts Options, log zerolog.Logger) *Poller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultOptions().PollInterval
	}

	return &Poller{
		device:  device,
		service: gameService,
		opts:    opts,
		log:     log,
	}
}

// Run samples the device until the context is canceled, then closes it.
func (p *Poller) Run(ctx context.Context) error {
	defer p.device.Close()

	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	p.log.Info().
		Dur("interval", p.opts.PollInterval).
		Int("threshold_low", p.opts.ThresholdLow).
		Int("threshold_high", p.opts.ThresholdHigh).
		Msg("joystick poller started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one sample cycle. The button takes priority over the axes;
// while it is held no direction is read, mirroring how a thumb press also
// deflects the stick.
func (p *Poller) poll(ctx context.Context) {
	pressed, err := p.device.ButtonPressed()
	if err != nil {
		p.log.Warn().Err(err).Msg("joystick button read failed")
		return
	}

	direction := ""
	if pressed {
		p.handleButton(ctx)
	} else {
		direction, err = p.readDirection()
		if err != nil {
			p.log.Warn().Err(err).Msg("joystick axis read failed")
			return
		}
	}

	if direction != "" && direction != p.prev {
		if _, err := p.service.Move(ctx, direction); err != nil {
			p.log.Warn().Err(err).Str("direction", direction).Msg("joystick move failed")
		}
	}

	p.prev = direction
}

// handleButton restarts the game, but only when it is over. Restart is the
// one destructive input on the stick and a mid-game press is far more
// likely a fumble than an intent to throw the board away.
func (p *Poller) handleButton(ctx context.Context) {
	snap, err := p.service.State(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("joystick state read failed")
		return
	}
	if !snap.GameOver {
		return
	}

	if _, err := p.service.Restart(ctx); err != nil {
		p.log.Warn().Err(err).Msg("joystick restart failed")
		return
	}
	p.log.Info().Msg("game restarted from joystick button")
}

// readDirection maps the current axis deflection to a direction symbol.
// The horizontal axis wins when both are deflected.
func (p *Poller) readDirection() (string, error) {
	x, err := p.device.ReadAxis(p.opts.AxisXChannel)
	if err != nil {
		return "", err
	}
	y, err := p.device.ReadAxis(p.opts.AxisYChannel)
	if err != nil {
		return "", err
	}

	switch {
	case x <= p.opts.ThresholdLow:
		return "a", nil
	case x >= p.opts.ThresholdHigh:
		return "d", nil
	case y <= p.opts.ThresholdLow:
		return "w", nil
	case y >= p.opts.ThresholdHigh:
		return "s", nil
	}

	return "", nil
}
