package rotary

import (
	"strings"
)

// Status is the set of events reported by a single poll.
type Status uint8

const (
	// None means nothing happened.
	None Status = 0
	// Forward means one detent was completed in forward direction.
	Forward Status = 1 << 0
	// Reverse means one detent was completed in reverse direction.
	Reverse Status = 1 << 1
	// ButtonPressed means the switch went from released to pressed.
	ButtonPressed Status = 1 << 2
	// ButtonLongPressed means the switch has been held longer than the switch timeout.
	ButtonLongPressed Status = 1 << 3
	// ButtonReleased means the switch went from pressed to released.
	ButtonReleased Status = 1 << 4
)

var statusNames = [...]struct {
	flag Status
	name string
}{
	{Forward, "Forward"},
	{Reverse, "Reverse"},
	{ButtonPressed, "ButtonPressed"},
	{ButtonLongPressed, "ButtonLongPressed"},
	{ButtonReleased, "ButtonReleased"},
}

// Has reports whether every flag in f is set in s.
func (s Status) Has(f Status) bool {
	return f != None && s&f == f
}

// Moved reports whether s carries a Forward or Reverse flag.
func (s Status) Moved() bool {
	return s&(Forward|Reverse) != 0
}

func (s Status) String() string {
	if s == None {
		return "None"
	}
	var parts []string
	for _, n := range statusNames {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}
