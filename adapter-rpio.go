//go:build linux && !tinygo

package rotary

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioPin wraps a memory-mapped Raspberry Pi pin to satisfy the Pin interface.
type rpioPin struct {
	pin rpio.Pin
}

func (p *rpioPin) In(pull Pull) error {
	p.pin.Input()
	if mode, ok := toRPIOPull(pull); ok {
		p.pin.Pull(mode)
	}
	return nil
}

// toRPIOPull maps a Pull to the go-rpio resistor mode.
// ok is false for PullNoChange, which leaves the resistor as it is.
func toRPIOPull(pull Pull) (mode rpio.Pull, ok bool) {
	switch pull {
	case PullUp:
		return rpio.PullUp, true
	case PullDown:
		return rpio.PullDown, true
	case PullFloat:
		return rpio.PullOff, true
	default:
		return rpio.PullNone, false
	}
}

func (p *rpioPin) Read() Level {
	return Level(p.pin.Read() == rpio.High)
}

// rpioCloser unmaps the GPIO memory when the device ends.
type rpioCloser struct{}

func (rpioCloser) Close() error {
	return rpio.Close()
}

// RPIOConfig holds the configuration for the Raspberry Pi /dev/gpiomem driver.
type RPIOConfig struct {
	HardwareConfig
	// PhaseAPin is the BCM pin number for phase A.
	PhaseAPin int
	// PhaseBPin is the BCM pin number for phase B.
	PhaseBPin int
	// SwitchPin is the BCM pin number for the push-button.
	// Optional. If 0, switch events are disabled, so BCM 0 (the HAT ID EEPROM
	// data line) cannot carry the switch.
	SwitchPin int
}

// NewRPIO creates a new rotary encoder decoder reading the pins through go-rpio.
// End releases the memory mapping.
func NewRPIO(c RPIOConfig) (*Device, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open rpio: %w", err)
	}

	hw := c.HardwareConfig
	if hw.PhaseA == nil {
		hw.PhaseA = &rpioPin{pin: rpio.Pin(c.PhaseAPin)}
	}
	if hw.PhaseB == nil {
		hw.PhaseB = &rpioPin{pin: rpio.Pin(c.PhaseBPin)}
	}
	if hw.Switch == nil && c.SwitchPin != 0 {
		hw.Switch = &rpioPin{pin: rpio.Pin(c.SwitchPin)}
	}

	dev, err := NewWithHardware(hw)
	if err != nil {
		rpio.Close()
		return nil, err
	}
	dev.closer = rpioCloser{}
	return dev, nil
}
