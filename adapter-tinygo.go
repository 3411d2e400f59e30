//go:build tinygo

package rotary

import (
	"machine"
)

// tinygoPin wraps a machine.Pin to satisfy the Pin interface.
type tinygoPin struct {
	pin machine.Pin
}

func (p *tinygoPin) In(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (p *tinygoPin) Read() Level {
	return Level(p.pin.Get())
}

// Config holds the configuration for the TinyGo driver.
type Config struct {
	HardwareConfig
}

// NewTinyGo creates a new rotary encoder decoder for TinyGo systems.
// Pass machine.NoPin as switchPin when the encoder has no push-button.
func NewTinyGo(c Config, phaseAPin, phaseBPin, switchPin machine.Pin) (*Device, error) {
	hw := c.HardwareConfig
	if hw.PhaseA == nil {
		hw.PhaseA = &tinygoPin{pin: phaseAPin}
	}
	if hw.PhaseB == nil {
		hw.PhaseB = &tinygoPin{pin: phaseBPin}
	}
	if hw.Switch == nil && switchPin != machine.NoPin {
		hw.Switch = &tinygoPin{pin: switchPin}
	}

	return NewWithHardware(hw)
}
