package rotary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"sync"
	"time"
)

var (
	ErrPkg              = errors.New("rotary")
	ErrOutOfRange       = errors.New("count out of range")
	ErrInvalidRange     = errors.New("lower limit above upper limit")
	ErrPinNotConfigured = errors.New("phase pin not configured")
)

const (
	// DefaultSettleDelay is the pause taken after a poll whose result differs from the previous one.
	DefaultSettleDelay = 10 * time.Millisecond

	defaultLower = 0
	defaultUpper = 10
	defaultStep  = 1
)

// Quadrature states. 1..3 walk through a forward detent, 4..6 through a reverse one.
// The two negative values mark a completed detent and are reset to 0 on the next poll.
const (
	stateIdle    int8 = 0
	stateForward int8 = -1
	stateReverse int8 = -2
	numStates         = 7
)

// transition is indexed by [input][state], input being A | B<<1.
var transition = [4][numStates]int8{
	//  0   1   2   3   4   5   6
	//  (-- Fwd --)  (-- Rev --)
	{0, 1, 2, -1, 4, 5, -2}, // !a && !b
	{1, 1, 2, 3, 4, 6, 6},   //  a && !b
	{4, 1, 3, 3, 4, 5, 6},   // !a &&  b
	{0, 2, 2, 3, 5, 5, 6},   //  a &&  b
}

// nextState applies one (A, B) sample to the quadrature state.
// States outside 0..6 are treated as 0.
func nextState(state int8, a, b Level) int8 {
	if state < 0 || state >= numStates {
		state = stateIdle
	}
	var input int
	if a == High {
		input |= 1
	}
	if b == High {
		input |= 2
	}
	return transition[input][state]
}

type HardwareConfig struct {
	// PhaseA is the pin wired to the A output of the encoder.
	PhaseA Pin
	// PhaseB is the pin wired to the B output of the encoder.
	PhaseB Pin
	// Switch is the push-button pin.
	// Optional. If nil, no button events are ever reported.
	Switch Pin
	// SwitchActiveLow inverts the switch level, for buttons wired to ground with a pull-up.
	// Defaults to false (High means pressed).
	SwitchActiveLow bool
	// Pull is the pull mode requested for every pin in Begin.
	// Defaults to PullNoChange.
	Pull Pull
	// SettleDelay is the blocking pause after a change of the poll result.
	// Defaults to DefaultSettleDelay if not provided. Use SetSettleDelay to disable it.
	SettleDelay time.Duration
	// Clock timestamps presses for long-press detection.
	// Defaults to a monotonic clock based on time.Since.
	Clock Clock
	// Yield is called between polls in WaitForStatus.
	// Defaults to runtime.Gosched.
	Yield func()
	// Sleep performs the settling delay.
	// Defaults to time.Sleep.
	Sleep func(time.Duration)
}

type Device struct {
	config HardwareConfig
	closer io.Closer
	mu     sync.Mutex

	lower int
	upper int
	step  uint
	count int

	state      int8
	pressed    bool
	pressTimed bool
	pressedAt  uint32
	timeout    time.Duration
	settle     time.Duration
	lastResult Status
}

// NewWithHardware creates a new encoder decoder with the provided hardware interfaces.
// The pins are not touched until Begin is called.
func NewWithHardware(c HardwareConfig) (*Device, error) {
	if c.PhaseA == nil || c.PhaseB == nil {
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrPinNotConfigured)
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.Clock == nil {
		c.Clock = defaultClock
	}
	if c.Yield == nil {
		c.Yield = runtime.Gosched
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}

	return &Device{
		config: c,
		lower:  defaultLower,
		upper:  defaultUpper,
		step:   defaultStep,
		settle: c.SettleDelay,
	}, nil
}

func (d *Device) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return fmt.Sprintf("RotaryEncoder(Count=%d, Range=[%d,%d], Step=%d, Switch=%v, SwitchTimeout=%s)",
		d.count,
		d.lower,
		d.upper,
		d.step,
		d.config.Switch != nil,
		d.timeout,
	)
}

// Begin configures the phase pins and the switch pin as inputs and resets the decoder state.
// It must be called before the first poll.
func (d *Device) Begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.config.PhaseA.In(d.config.Pull); err != nil {
		return fmt.Errorf("failed to configure phase A pin: %w", err)
	}
	if err := d.config.PhaseB.In(d.config.Pull); err != nil {
		return fmt.Errorf("failed to configure phase B pin: %w", err)
	}
	if d.config.Switch != nil {
		if err := d.config.Switch.In(d.config.Pull); err != nil {
			return fmt.Errorf("failed to configure switch pin: %w", err)
		}
	}

	d.state = stateIdle
	d.pressed = false
	d.pressTimed = false
	d.lastResult = None

	globalLogger.Info("Rotary encoder configured. Ready to poll.")
	return nil
}

// End stops working with the encoder and releases the GPIO backend if it owns one.
func (d *Device) End() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	if err != nil {
		globalLogger.Warn("Failed to close GPIO backend")
		return err
	}
	globalLogger.Info("GPIO backend closed.")
	return nil
}

// SetSwitchTimeout sets how long the switch must be held before ButtonLongPressed is reported.
// Zero disables long-press detection.
// This method is concurrent safe.
func (d *Device) SetSwitchTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if timeout < 0 {
		timeout = 0
	}
	d.timeout = timeout
}

// SetSettleDelay sets the pause taken after a change of the poll result.
// Zero disables it.
// This method is concurrent safe.
func (d *Device) SetSettleDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	d.settle = delay
}

// SetRange sets the counter bounds (inclusive) and the step applied per detent.
// A count outside the new bounds is moved to the nearest bound.
// If lower > upper, nothing is changed and ErrInvalidRange is returned.
// This method is concurrent safe.
func (d *Device) SetRange(lower, upper int, step uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if lower > upper {
		return fmt.Errorf("%w: %w", ErrPkg, ErrInvalidRange)
	}
	d.lower = lower
	d.upper = upper
	d.step = step

	if d.count < lower {
		d.count = lower
	}
	if d.count > upper {
		d.count = upper
	}
	return nil
}

// Range returns the counter bounds and step width.
// This method is concurrent safe.
func (d *Device) Range() (lower, upper int, step uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lower, d.upper, d.step
}

// SetCount sets the counter.
// Values outside the configured range are rejected with ErrOutOfRange and leave the counter unchanged.
// This method is concurrent safe.
func (d *Device) SetCount(count int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setCount(count)
}

// setCount must be called with the lock held.
func (d *Device) setCount(count int) error {
	if count < d.lower || count > d.upper {
		return fmt.Errorf("%w: %w", ErrPkg, ErrOutOfRange)
	}
	d.count = count
	return nil
}

// Count returns the current counter value.
// This method is concurrent safe.
func (d *Device) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Status samples the pins once and returns the resulting events.
// When the result differs from the previous poll it blocks for the settling delay before returning.
// This method is concurrent safe but not re-entrant.
func (d *Device) Status() Status {
	d.mu.Lock()
	result := d.poll()
	changed := result != d.lastResult
	d.lastResult = result
	settle := d.settle
	d.mu.Unlock()

	if changed && settle > 0 {
		d.config.Sleep(settle)
	}
	return result
}

// poll runs one step of the decoder without any delay.
// Call with lock held.
func (d *Device) poll() Status {
	a := d.config.PhaseA.Read()
	b := d.config.PhaseB.Read()
	pressed := false
	if d.config.Switch != nil {
		pressed = (d.config.Switch.Read() == High) != d.config.SwitchActiveLow
	}

	result := None

	d.state = nextState(d.state, a, b)
	switch d.state {
	case stateForward:
		d.stepUp()
		result = Forward
	case stateReverse:
		d.stepDown()
		result = Reverse
	}

	return result | d.pollSwitch(pressed)
}

// stepUp adds the step width unless that would pass the upper limit.
// The distance is taken in unsigned arithmetic so neither a step above
// math.MaxInt nor a count at math.MaxInt can wrap.
// Call with lock held.
func (d *Device) stepUp() {
	if d.step <= uint(d.upper)-uint(d.count) {
		d.count = int(uint(d.count) + d.step)
	}
}

// stepDown is the mirror of stepUp against the lower limit.
// Call with lock held.
func (d *Device) stepDown() {
	if d.step <= uint(d.count)-uint(d.lower) {
		d.count = int(uint(d.count) - d.step)
	}
}

// pollSwitch tracks switch edges and long-press timing.
// Call with lock held.
func (d *Device) pollSwitch(pressed bool) Status {
	if pressed != d.pressed {
		d.pressed = pressed
		if pressed {
			d.pressTimed = true
			d.pressedAt = d.config.Clock.Millis()
			return ButtonPressed
		}
		d.pressTimed = false
		return ButtonReleased
	}

	if !pressed || !d.pressTimed || d.timeout == 0 {
		return None
	}
	elapsed := d.config.Clock.Millis() - d.pressedAt
	if time.Duration(elapsed)*time.Millisecond > d.timeout {
		d.pressTimed = false
		globalLogger.Debug("Switch held past timeout after " + strconv.FormatUint(uint64(elapsed), 10) + "ms")
		return ButtonLongPressed
	}
	return None
}

// WaitForStatus polls until an event happens and returns it.
// The configured yield hook runs between polls. It never times out.
func (d *Device) WaitForStatus() Status {
	for {
		if s := d.Status(); s != None {
			return s
		}
		d.config.Yield()
	}
}

// WaitForStatusContext polls until an event happens or the context is cancelled.
func (d *Device) WaitForStatusContext(ctx context.Context) (Status, error) {
	for {
		select {
		case <-ctx.Done():
			return None, ctx.Err()
		default:
		}

		if s := d.Status(); s != None {
			return s, nil
		}
		d.config.Yield()
	}
}
