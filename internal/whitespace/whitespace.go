// Package whitespace implements the text normalization modes applied to
// character data collected under a matched element.
package whitespace

import "fmt"

// Mode selects how collected character data is normalized. Modes are ordered
// most aggressive first so that combining two modes is a numeric min.
type Mode int

const (
	// Normalize trims leading and trailing whitespace and collapses inner
	// runs to a single space. Default.
	Normalize Mode = iota
	// Trim removes leading and trailing whitespace only.
	Trim
	// Collapse replaces every whitespace run with a single space, including
	// runs at the edges.
	Collapse
	// Keep leaves the text untouched.
	Keep
)

// String returns the textual mode name.
func (m Mode) String() string {
	switch m {
	case Normalize:
		return "normalize"
	case Trim:
		return "trim"
	case Collapse:
		return "collapse"
	case Keep:
		return "keep"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a textual mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normalize", "":
		return Normalize, nil
	case "trim":
		return Trim, nil
	case "collapse":
		return Collapse, nil
	case "keep":
		return Keep, nil
	default:
		return Normalize, fmt.Errorf("unknown whitespace mode %q", s)
	}
}

// Combine returns the more aggressive of the two modes.
func Combine(a, b Mode) Mode {
	if a < b {
		return a
	}
	return b
}

// Apply normalizes in according to the mode. The input is not modified; the
// result aliases in when no change is needed.
func Apply(m Mode, in string) string {
	switch m {
	case Trim:
		return trim(in)
	case Collapse:
		return collapse(in)
	case Normalize:
		return trim(collapse(in))
	default:
		return in
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func trim(in string) string {
	start := 0
	end := len(in)
	for start < end && isSpace(in[start]) {
		start++
	}
	for end > start && isSpace(in[end-1]) {
		end--
	}
	return in[start:end]
}

func collapse(in string) string {
	if !needsCollapse(in) {
		return in
	}
	out := make([]byte, 0, len(in))
	inRun := false
	for i := 0; i < len(in); i++ {
		if isSpace(in[i]) {
			if !inRun {
				out = append(out, ' ')
				inRun = true
			}
			continue
		}
		inRun = false
		out = append(out, in[i])
	}
	return string(out)
}

func needsCollapse(in string) bool {
	prevSpace := false
	for i := 0; i < len(in); i++ {
		if !isSpace(in[i]) {
			prevSpace = false
			continue
		}
		if in[i] != ' ' || prevSpace {
			return true
		}
		prevSpace = true
	}
	return false
}
