// Package globevents delivers pattern-selected subtrees out of a streaming
// XML or HTML tokenizer. Callers register path patterns such as
// "alpha/beta", "/alpha/beta", "alpha//foo" or "alpha/*" together with open
// and close handlers; during a parse the engine materializes an in-memory
// Node only for elements some registered pattern can still reach, invokes
// matching handlers most specific pattern first, and releases each node as
// soon as nothing references it.
package globevents

import (
	"fmt"
	"io"
	"os"

	globerrors "github.com/gitpan/XML-Parser-GlobEvents/errors"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/match"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/pattern"
	"github.com/gitpan/XML-Parser-GlobEvents/pkg/xmlevents"
)

// Handler is the set of callbacks and options associated with one pattern.
// Open fires when a matching element opens, before any of its content has
// been seen. Close fires when it closes, receiving the assembled node; only
// patterns with a Close handler cause subtree materialization. Whitespace
// selects how text under the node is normalized (default Normalize).
type Handler struct {
	Open       func(*StartElement) error
	Close      func(*Node) error
	Whitespace Whitespace
}

// StartElement is the lightweight open-time notification: no content has
// been parsed yet, so only the tag, its attributes and its location exist.
type StartElement struct {
	Name  string
	Path  string
	Attrs map[string]string
	// Pos is the 1-based position among same-named siblings.
	Pos   int
	Depth int
}

// Parser matches registered patterns against a tokenizer event stream.
// A Parser may be reused for several documents but is not safe for
// concurrent use.
type Parser struct {
	reg      match.Registry
	handlers map[int]Handler
	opts     Options
	seq      int
	parsing  bool
}

// New creates a parser with default options.
func New() *Parser {
	return NewWithOptions(NewOptions())
}

// NewWithOptions creates a parser with explicit options.
func NewWithOptions(opts Options) *Parser {
	return &Parser{opts: opts, handlers: make(map[int]Handler)}
}

// On registers a handler for a path pattern. Registration order is the final
// tie-break when several patterns of equal specificity match one element.
func (p *Parser) On(pat string, h Handler) error {
	if p.parsing {
		return fmt.Errorf("register pattern %q: parse in progress", pat)
	}
	if h.Open == nil && h.Close == nil {
		return fmt.Errorf("register pattern %q: handler has no open or close function", pat)
	}
	compiled, err := pattern.Compile(pat, p.seq)
	if err != nil {
		return err
	}
	p.reg.Add(&match.Entry{
		Pattern:   compiled,
		ID:        p.seq,
		WantsTree: h.Close != nil,
	})
	p.handlers[p.seq] = h
	p.seq++
	return nil
}

// OnClose registers a close handler alone, with default whitespace handling.
func (p *Parser) OnClose(pat string, fn func(*Node) error) error {
	return p.On(pat, Handler{Close: fn})
}

// Parse consumes one XML document from r, invoking registered handlers as
// matches occur. It returns nil at end of document or after a handler
// requested ErrStop, a *errors.Parse for tokenizer failures and a
// *errors.Handler for handler failures.
func (p *Parser) Parse(r io.Reader) error {
	return p.ParseSource(xmlevents.NewXMLReader(r))
}

// ParseHTML consumes one HTML document from r. The HTML tokenizer repairs
// unbalanced markup into strict open/close discipline before the engine
// sees it.
func (p *Parser) ParseHTML(r io.Reader) error {
	return p.ParseSource(xmlevents.NewHTMLReader(r))
}

// ParseFile parses the XML document at path.
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := p.Parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ParseSource drives the engine from an arbitrary event source.
func (p *Parser) ParseSource(src xmlevents.Source) error {
	if p.parsing {
		return fmt.Errorf("parse: parse in progress")
	}
	p.parsing = true
	defer func() { p.parsing = false }()
	return p.drive(src)
}

func parseError(err error) error {
	line, column := xmlevents.Position(err)
	return &globerrors.Parse{Line: line, Column: column, Err: err}
}
