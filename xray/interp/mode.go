package interp

import (
	"fmt"
	"strings"
)

// Mode selects the working space of a [Table].
type Mode int

const (
	ModeLogLog Mode = iota
	ModeLinear
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLogLog:
		return "loglog"
	case ModeLinear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by [Mode.String].
// "log-log" and "log" are accepted as aliases of "loglog".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loglog", "log-log", "log", "":
		return ModeLogLog, nil
	case "linear", "lin":
		return ModeLinear, nil
	default:
		return 0, fmt.Errorf("unknown interpolation mode %q", s)
	}
}
