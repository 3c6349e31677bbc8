// Package viewpoint selects which camera strategy drives the rendered view
// and publishes its pose once per tick.
package viewpoint

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("viewpoint: unknown mode")

// Mode is the active camera strategy. It has exactly two values.
type Mode uint8

const (
	ModeThirdPerson Mode = iota + 1
	ModeFly
)

// Modes lists every mode in selector order.
var Modes = []Mode{ModeThirdPerson, ModeFly}

func (m Mode) String() string {
	switch m {
	case ModeThirdPerson:
		return "third_person"
	case ModeFly:
		return "fly"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeThirdPerson, ModeFly:
		return true
	}
	return false
}

// Next returns the mode a toggle switches to.
func (m Mode) Next() Mode {
	switch m {
	case ModeThirdPerson:
		return ModeFly
	case ModeFly:
		return ModeThirdPerson
	}
	panic(fmt.Sprintf("viewpoint: invalid mode %d", uint8(m)))
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
