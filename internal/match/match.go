// Package match evaluates compiled patterns against the open-element path.
//
// Each registered pattern is advanced as an NFA over its segment list: a
// frame keeps, per pattern, the set of segment indices still viable after
// consuming the path down to that frame. A descendant wildcard keeps its own
// index viable on every step, which is what lets interest propagate through
// unbounded depth without rescanning the path.
package match

import (
	"slices"

	"github.com/gitpan/XML-Parser-GlobEvents/internal/pattern"
)

// Entry associates a compiled pattern with its registration identity and
// whether a match must materialize a subtree (the pattern has a close
// handler) or only produce open-time notifications.
type Entry struct {
	Pattern   *pattern.Pattern
	ID        int
	WantsTree bool
}

// Registry holds registered patterns sorted most specific first.
type Registry struct {
	entries []*Entry
}

// Add registers a compiled pattern, keeping specificity order.
func (r *Registry) Add(e *Entry) {
	r.entries = append(r.entries, e)
	slices.SortStableFunc(r.entries, func(a, b *Entry) int {
		if a == b {
			return 0
		}
		if a.Pattern.MoreSpecific(b.Pattern) {
			return -1
		}
		return 1
	})
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int { return len(r.entries) }

// Root returns the viable-state sets before any element has been opened.
func (r *Registry) Root() Active {
	states := make([]patternState, 0, len(r.entries))
	for _, e := range r.entries {
		states = append(states, patternState{entry: e, viable: []int{0}})
	}
	return Active{states: states}
}

type patternState struct {
	entry  *Entry
	viable []int // segment indices, ascending; len(segments) is the accept state
}

// Active is the per-frame set of patterns that could still match the frame
// or one of its descendants. Entries stay in registry (specificity) order.
type Active struct {
	states []patternState
}

// Step advances every pattern by one element name and drops patterns with no
// viable state left.
func (a Active) Step(name string) Active {
	next := make([]patternState, 0, len(a.states))
	for _, ps := range a.states {
		segs := ps.entry.Pattern.Segments
		viable := stepStates(segs, ps.viable, name)
		if len(viable) == 0 {
			continue
		}
		next = append(next, patternState{entry: ps.entry, viable: viable})
	}
	return Active{states: next}
}

// Matched returns the entries whose pattern exactly matches the path consumed
// so far, most specific first.
func (a Active) Matched() []*Entry {
	var out []*Entry
	for _, ps := range a.states {
		if accepts(ps.entry.Pattern.Segments, ps.viable) {
			out = append(out, ps.entry)
		}
	}
	return out
}

// Pending reports whether any tree-building pattern could still match a
// not-yet-seen descendant of the current frame. A frame with no pending
// patterns and no materializing ancestor can have its whole subtree skipped.
func (a Active) Pending() bool {
	for _, ps := range a.states {
		if !ps.entry.WantsTree {
			continue
		}
		if extendable(ps.entry.Pattern.Segments, ps.viable) {
			return true
		}
	}
	return false
}

// closure expands the state set across descendant wildcards: a viable
// descendant segment also makes the segment after it viable without
// consuming an element.
func closure(segs []pattern.Segment, states []int) []int {
	out := states
	expanded := false
	for i := 0; i < len(out); i++ {
		s := out[i]
		if s >= len(segs) || segs[s].Op != pattern.OpDescendant {
			continue
		}
		if !slices.Contains(out, s+1) {
			if !expanded {
				out = slices.Clone(out)
				expanded = true
			}
			out = append(out, s+1)
		}
	}
	if expanded {
		slices.Sort(out)
	}
	return out
}

func stepStates(segs []pattern.Segment, states []int, name string) []int {
	var next []int
	for _, s := range closure(segs, states) {
		if s >= len(segs) {
			continue // accepted; nothing left to consume
		}
		switch segs[s].Op {
		case pattern.OpLiteral:
			if segs[s].Name == name {
				next = appendState(next, s+1)
			}
		case pattern.OpWildcard:
			next = appendState(next, s+1)
		case pattern.OpDescendant:
			next = appendState(next, s)
		}
	}
	return next
}

func appendState(states []int, s int) []int {
	if slices.Contains(states, s) {
		return states
	}
	return append(states, s)
}

func accepts(segs []pattern.Segment, states []int) bool {
	return slices.Contains(closure(segs, states), len(segs))
}

func extendable(segs []pattern.Segment, states []int) bool {
	for _, s := range states {
		if s < len(segs) {
			return true
		}
	}
	return false
}
