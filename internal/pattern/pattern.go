// Package pattern compiles textual path patterns into segment matchers and
// ranks them by specificity.
package pattern

import (
	"strconv"
	"strings"
	"unicode"

	globerrors "github.com/gitpan/XML-Parser-GlobEvents/errors"
)

// Op identifies the kind of a compiled segment.
type Op int

const (
	// OpLiteral matches one element with an exact name.
	OpLiteral Op = iota
	// OpWildcard matches any one element.
	OpWildcard
	// OpDescendant matches zero or more elements of any name.
	OpDescendant
)

// Segment is one step of a compiled pattern.
type Segment struct {
	Op   Op
	Name string // set for OpLiteral only
}

// Pattern is a compiled path pattern. Unanchored patterns carry a synthetic
// leading OpDescendant segment so that matching is uniform: a pattern matches
// a path iff its segment list matches the whole path from the root.
type Pattern struct {
	Source   string
	Segments []Segment
	Anchored bool
	Seq      int // registration order, final specificity tie-break

	literals  int
	wildcards int
}

// Compile parses src into a Pattern. seq is the registration sequence number.
//
// Accepted forms: `name`, `*`, and `/`-separated sequences of those, with a
// leading `/` anchoring the pattern at the document root and `//` standing
// for any number of intermediate elements. A pattern consisting only of
// separators, or ending with a separator, is rejected.
func Compile(src string, seq int) (*Pattern, error) {
	if src == "" {
		return nil, compileError(src, "empty pattern")
	}
	parts := strings.Split(src, "/")
	p := &Pattern{Source: src, Seq: seq}
	if parts[0] == "" {
		p.Anchored = true
		parts = parts[1:]
	}
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return nil, compileError(src, "pattern ends with a separator")
	}
	if !p.Anchored {
		p.Segments = append(p.Segments, Segment{Op: OpDescendant})
	}
	for _, part := range parts {
		switch {
		case part == "":
			// Gap from `//`; runs of separators collapse into one segment.
			if n := len(p.Segments); n > 0 && p.Segments[n-1].Op == OpDescendant {
				continue
			}
			p.Segments = append(p.Segments, Segment{Op: OpDescendant})
		case part == "*":
			p.wildcards++
			p.Segments = append(p.Segments, Segment{Op: OpWildcard})
		default:
			if !validName(part) {
				return nil, compileError(src, "invalid name "+strconv.Quote(part))
			}
			p.literals++
			p.Segments = append(p.Segments, Segment{Op: OpLiteral, Name: part})
		}
	}
	return p, nil
}

// MoreSpecific reports whether p outranks q: more literal segments first,
// then more single-level wildcards, then anchored before unanchored, with
// registration order as the final tie-break.
func (p *Pattern) MoreSpecific(q *Pattern) bool {
	if p.literals != q.literals {
		return p.literals > q.literals
	}
	if p.wildcards != q.wildcards {
		return p.wildcards > q.wildcards
	}
	if p.Anchored != q.Anchored {
		return p.Anchored
	}
	return p.Seq < q.Seq
}

func compileError(src, reason string) error {
	return &globerrors.Pattern{Pattern: src, Reason: reason}
}

// validName checks the element-name grammar accepted in literal segments:
// the XML Name production restricted to the character classes the upstream
// tokenizer emits (letters, digits, '_', '-', '.', ':').
func validName(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}
