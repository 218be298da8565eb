package globevents

import (
	"github.com/gitpan/XML-Parser-GlobEvents/internal/tree"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/whitespace"
)

// Node is the assembled subtree delivered to close handlers. The handler
// borrows it for the duration of the call; it must not retain or mutate it.
type Node = tree.Node

// Content is one entry of a node's ordered content list.
type Content = tree.Content

// Whitespace selects how text collected under a matched node is normalized.
// When several patterns request different modes for the same element, the
// most aggressive one wins.
type Whitespace = whitespace.Mode

const (
	// Normalize trims and collapses inner whitespace runs. Default.
	Normalize = whitespace.Normalize
	// Trim removes leading and trailing whitespace only.
	Trim = whitespace.Trim
	// Collapse replaces whitespace runs with single spaces.
	Collapse = whitespace.Collapse
	// Keep leaves text untouched.
	Keep = whitespace.Keep
)

// ParseWhitespace resolves a textual whitespace mode name.
func ParseWhitespace(s string) (Whitespace, error) {
	return whitespace.ParseMode(s)
}
