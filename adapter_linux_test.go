//go:build linux && !tinygo

package rotary

import (
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/warthog618/go-gpiocdev"
)

func TestToRPIOPull(t *testing.T) {
	cases := []struct {
		in   Pull
		want rpio.Pull
		ok   bool
	}{
		{PullNoChange, rpio.PullNone, false},
		{PullFloat, rpio.PullOff, true},
		{PullDown, rpio.PullDown, true},
		{PullUp, rpio.PullUp, true},
	}
	for _, c := range cases {
		got, ok := toRPIOPull(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("toRPIOPull(%d) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCdevInputOptions(t *testing.T) {
	cases := map[Pull]gpiocdev.LineConfigOption{
		PullFloat: gpiocdev.WithBiasDisabled,
		PullDown:  gpiocdev.WithPullDown,
		PullUp:    gpiocdev.WithPullUp,
	}
	for pull, bias := range cases {
		opts := cdevInputOptions(pull)
		if len(opts) != 2 || opts[0] != gpiocdev.AsInput || opts[1] != bias {
			t.Errorf("cdevInputOptions(%d) = %v, want [AsInput %v]", pull, opts, bias)
		}
	}

	opts := cdevInputOptions(PullNoChange)
	if len(opts) != 1 || opts[0] != gpiocdev.AsInput {
		t.Errorf("cdevInputOptions(PullNoChange) = %v, want [AsInput]", opts)
	}
}

func TestNewGPIOCDevWithoutSwitchLine(t *testing.T) {
	// Injected phase pins mean no line is requested from the kernel.
	dev, err := NewGPIOCDev(GPIOCDevConfig{
		HardwareConfig: HardwareConfig{PhaseA: &mockPin{}, PhaseB: &mockPin{}},
	})
	if err != nil {
		t.Fatalf("NewGPIOCDev failed: %v", err)
	}
	if dev.config.Switch != nil {
		t.Error("Expected no switch when SwitchLine is nil")
	}
	if dev.closer != nil {
		t.Error("Expected no lines to release")
	}
}
