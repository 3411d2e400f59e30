//go:build linux && !tinygo

package rotary

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// cdevPin wraps a requested GPIO character device line to satisfy the Pin interface.
type cdevPin struct {
	line *gpiocdev.Line
}

func (p *cdevPin) In(pull Pull) error {
	return p.line.Reconfigure(cdevInputOptions(pull)...)
}

// cdevInputOptions returns the line configuration for an input with the given pull.
func cdevInputOptions(pull Pull) []gpiocdev.LineConfigOption {
	opts := []gpiocdev.LineConfigOption{gpiocdev.AsInput}
	switch pull {
	case PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	case PullFloat:
		opts = append(opts, gpiocdev.WithBiasDisabled)
	}
	return opts
}

func (p *cdevPin) Read() Level {
	v, err := p.line.Value()
	if err != nil {
		globalLogger.Error("GPIO line read error")
		return Low
	}
	return Level(v != 0)
}

// cdevLines closes every requested line when the device ends.
type cdevLines []*gpiocdev.Line

func (ls cdevLines) Close() error {
	var errs []error
	for _, l := range ls {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GPIOCDevConfig holds the configuration for the Linux GPIO character device driver.
type GPIOCDevConfig struct {
	HardwareConfig
	// Chip is the GPIO chip name.
	// Defaults to "gpiochip0" if not provided.
	Chip string
	// PhaseALine is the line offset for phase A.
	PhaseALine int
	// PhaseBLine is the line offset for phase B.
	PhaseBLine int
	// SwitchLine is the line offset for the push-button.
	// Optional. If nil, switch events are disabled. Offset 0 is a valid line.
	SwitchLine *int
}

// NewGPIOCDev creates a new rotary encoder decoder using the GPIO character device.
// End releases the requested lines.
func NewGPIOCDev(c GPIOCDevConfig) (*Device, error) {
	if c.Chip == "" {
		c.Chip = "gpiochip0"
	}

	hw := c.HardwareConfig
	var lines cdevLines
	request := func(offset int) (Pin, error) {
		l, err := gpiocdev.RequestLine(c.Chip, offset, gpiocdev.AsInput)
		if err != nil {
			return nil, fmt.Errorf("failed to request line %s:%d: %w", c.Chip, offset, err)
		}
		lines = append(lines, l)
		return &cdevPin{line: l}, nil
	}

	var err error
	if hw.PhaseA == nil {
		if hw.PhaseA, err = request(c.PhaseALine); err != nil {
			lines.Close()
			return nil, err
		}
	}
	if hw.PhaseB == nil {
		if hw.PhaseB, err = request(c.PhaseBLine); err != nil {
			lines.Close()
			return nil, err
		}
	}
	if hw.Switch == nil && c.SwitchLine != nil {
		if hw.Switch, err = request(*c.SwitchLine); err != nil {
			lines.Close()
			return nil, err
		}
	}

	dev, err := NewWithHardware(hw)
	if err != nil {
		lines.Close()
		return nil, err
	}
	if len(lines) > 0 {
		dev.closer = lines
	}
	return dev, nil
}
