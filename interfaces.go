package rotary

import (
	"time"
)

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pull represents the internal pull-up/down resistor state.
type Pull uint8

const (
	PullNoChange Pull = iota
	PullFloat
	PullDown
	PullUp
)

// Pin represents a generic GPIO input pin.
type Pin interface {
	// In sets the pin as input with the given pull mode.
	In(pull Pull) error
	// Read returns the current level of the pin.
	Read() Level
}

// Clock is a monotonic millisecond time source.
// The value may wrap around; elapsed times are computed with unsigned
// subtraction and stay correct across a single wrap.
type Clock interface {
	Millis() uint32
}

// monotonicClock counts milliseconds since the package was loaded.
type monotonicClock struct {
	start time.Time
}

var defaultClock Clock = &monotonicClock{start: time.Now()}

func (c *monotonicClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
