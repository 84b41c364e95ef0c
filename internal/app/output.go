package app

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/xorg-choose-window/internal/window"
)

// Format selects how a chosen window id is printed.
type Format int

const (
	FormatDecimal Format = iota
	FormatHexadecimal
)

func (f Format) String() string {
	if f == FormatHexadecimal {
		return "hexadecimal"
	}
	return "decimal"
}

// ParseFormat accepts the spelled-out format names only.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "decimal":
		return FormatDecimal, nil
	case "hexadecimal":
		return FormatHexadecimal, nil
	default:
		return FormatDecimal, fmt.Errorf("invalid value for output format: %s", s)
	}
}

// FormatWindowID renders id as plain decimal digits or 0x-prefixed hex.
func FormatWindowID(id window.ID, f Format) string {
	if f == FormatHexadecimal {
		return id.Hex()
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeMatched Outcome = iota
	OutcomeNoMatch
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "nomatch"
	default:
		return "empty"
	}
}

// Result is a completed selection.
type Result struct {
	Outcome Outcome
	Window  window.Window
}

// Output is the line printed on stdout, or "" when nothing was chosen.
func (r Result) Output(f Format) string {
	if r.Outcome != OutcomeMatched {
		return ""
	}
	return FormatWindowID(r.Window.ID, f) + "\n"
}
