//go:build !tinygo

package rotary

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestRealPin(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO17", Num: 17, L: gpio.High}
	rp := &realPin{PinIO: p}

	if err := rp.In(PullUp); err != nil {
		t.Fatalf("In failed: %v", err)
	}
	if p.P != gpio.PullUp {
		t.Errorf("Expected pull-up on periph pin, got %s", p.P)
	}
	if rp.Read() != High {
		t.Error("Expected High")
	}
	p.L = gpio.Low
	if rp.Read() != Low {
		t.Error("Expected Low")
	}
}

func TestToPeriphPull(t *testing.T) {
	cases := map[Pull]gpio.Pull{
		PullNoChange: gpio.PullNoChange,
		PullFloat:    gpio.Float,
		PullDown:     gpio.PullDown,
		PullUp:       gpio.PullUp,
	}
	for in, want := range cases {
		if got := toPeriphPull(in); got != want {
			t.Errorf("toPeriphPull(%d) = %s, want %s", in, got, want)
		}
	}
}

func TestDecoderOnPeriphPins(t *testing.T) {
	a := &gpiotest.Pin{N: "GPIO17", Num: 17}
	b := &gpiotest.Pin{N: "GPIO27", Num: 27}
	dev, err := NewWithHardware(HardwareConfig{
		PhaseA: &realPin{PinIO: a},
		PhaseB: &realPin{PinIO: b},
		Sleep:  func(time.Duration) {},
	})
	if err != nil {
		t.Fatalf("NewWithHardware failed: %v", err)
	}
	dev.Begin()

	for _, s := range [][2]gpio.Level{{gpio.High, gpio.Low}, {gpio.High, gpio.High}, {gpio.Low, gpio.High}, {gpio.Low, gpio.Low}} {
		a.L, b.L = s[0], s[1]
		dev.Status()
	}
	if dev.Count() != 1 {
		t.Errorf("Expected count 1 after a forward detent on periph pins, got %d", dev.Count())
	}
}
