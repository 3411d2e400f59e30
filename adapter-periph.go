//go:build !tinygo

package rotary

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// realPin wraps a gpio.PinIO to satisfy the Pin interface.
type realPin struct {
	gpio.PinIO
}

func (p *realPin) In(pull Pull) error {
	return p.PinIO.In(toPeriphPull(pull), gpio.NoEdge)
}

func (p *realPin) Read() Level {
	if p.PinIO.Read() == gpio.High {
		return High
	}
	return Low
}

func toPeriphPull(pull Pull) gpio.Pull {
	switch pull {
	case PullFloat:
		return gpio.Float
	case PullDown:
		return gpio.PullDown
	case PullUp:
		return gpio.PullUp
	default:
		return gpio.PullNoChange
	}
}

// Config holds the configuration for the Linux/periph.io driver.
type Config struct {
	HardwareConfig
	// PhaseAPin is the GPIO pin number (BCM numbering) for phase A.
	PhaseAPin int
	// PhaseBPin is the GPIO pin number (BCM numbering) for phase B.
	PhaseBPin int
	// SwitchPin is the GPIO pin number (BCM numbering) for the push-button.
	// Optional. If 0, switch events are disabled, so GPIO0 (the HAT ID EEPROM
	// data line) cannot carry the switch.
	SwitchPin int
}

func openPeriphPin(n int) (Pin, error) {
	name := fmt.Sprintf("GPIO%d", n)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to open pin %s", name)
	}
	return &realPin{PinIO: p}, nil
}

// New creates a new rotary encoder decoder for Linux systems using periph.io.
// Pins set in c.HardwareConfig take precedence over the pin numbers.
// Call Begin before polling.
func New(c Config) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	hw := c.HardwareConfig
	if hw.PhaseA == nil {
		p, err := openPeriphPin(c.PhaseAPin)
		if err != nil {
			return nil, err
		}
		hw.PhaseA = p
	}
	if hw.PhaseB == nil {
		p, err := openPeriphPin(c.PhaseBPin)
		if err != nil {
			return nil, err
		}
		hw.PhaseB = p
	}
	if hw.Switch == nil && c.SwitchPin != 0 {
		p, err := openPeriphPin(c.SwitchPin)
		if err != nil {
			return nil, err
		}
		hw.Switch = p
	}

	return NewWithHardware(hw)
}
