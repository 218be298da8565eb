package globevents

import (
	"errors"
	"fmt"
	"io"

	globerrors "github.com/gitpan/XML-Parser-GlobEvents/errors"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/match"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/tree"
	"github.com/gitpan/XML-Parser-GlobEvents/internal/whitespace"
	"github.com/gitpan/XML-Parser-GlobEvents/pkg/xmlevents"
)

// ErrStop cancels the remainder of a parse. A handler returning ErrStop (or
// an error wrapping it) stops the drive loop: still-open frames are released
// without further handler invocations and the parse returns nil.
var ErrStop = errors.New("stop processing")

// frame is the per-open-element state: the viable pattern states after
// consuming the path down to this element, the patterns that matched it
// exactly, and the node under construction when the frame materializes.
type frame struct {
	name          string
	path          string
	active        match.Active
	matched       []*match.Entry
	builder       *tree.Builder
	counts        map[string]int
	mode          whitespace.Mode
	materializing bool
}

// drive consumes tokenizer events until end of document, error or
// cancellation. The stack starts with a virtual document frame so the root
// element is handled like any other child.
func (p *Parser) drive(src xmlevents.Source) error {
	doc := &frame{active: p.reg.Root()}
	stack := []*frame{doc}
	maxDepth := p.opts.resolvedMaxDepth()

	for {
		ev, err := src.Next()
		if err == io.EOF {
			if len(stack) > 1 {
				return parseError(io.ErrUnexpectedEOF)
			}
			return nil
		}
		if err != nil {
			return parseError(err)
		}

		switch ev.Kind {
		case xmlevents.KindOpen:
			if maxDepth > 0 && len(stack) > maxDepth {
				return parseError(fmt.Errorf("element depth exceeds limit %d", maxDepth))
			}
			f, err := p.openElement(stack[len(stack)-1], ev, len(stack))
			if err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			stack = append(stack, f)

		case xmlevents.KindText:
			if f := stack[len(stack)-1]; f.builder != nil {
				f.builder.AppendText(ev.Text)
			}

		case xmlevents.KindClose:
			if len(stack) == 1 {
				return parseError(fmt.Errorf("close of <%s> with no open element", ev.Name))
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.builder == nil {
				continue
			}
			node := f.builder.Finish()
			f.builder = nil
			if err := p.closeElement(f, node); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			if parent := stack[len(stack)-1]; parent.builder != nil {
				parent.builder.AddChild(node)
			}
			// Nothing else references node; dropping it here releases
			// the whole subtree.
		}
	}
}

// openElement advances the interest state through one open event, decides
// materialization and fires open handlers.
func (p *Parser) openElement(parent *frame, ev xmlevents.Event, depth int) (*frame, error) {
	if parent.counts == nil {
		parent.counts = make(map[string]int)
	}
	parent.counts[ev.Name]++
	pos := parent.counts[ev.Name]

	f := &frame{
		name:   ev.Name,
		path:   parent.path + "/" + ev.Name,
		active: parent.active.Step(ev.Name),
	}
	f.matched = f.active.Matched()

	// An element materializes when a tree-building pattern matched it
	// exactly, or when its parent materializes and therefore needs this
	// node as content. Elements that merely lie on the path to a possible
	// future match stay unmaterialized; their viable pattern states keep
	// propagating regardless. Decided once at open time; never revoked
	// before the close.
	closeMatched := false
	for _, e := range f.matched {
		if e.WantsTree {
			closeMatched = true
			break
		}
	}
	f.materializing = closeMatched || parent.materializing

	wantOpen := false
	for _, e := range f.matched {
		if p.handlers[e.ID].Open != nil {
			wantOpen = true
			break
		}
	}

	var attrs map[string]string
	if f.materializing || wantOpen {
		attrs = attrMap(ev.Attrs)
	}

	if f.materializing {
		f.mode = p.textMode(parent, f.matched)
		f.builder = tree.NewBuilder(ev.Name, f.path, attrs, pos, f.mode)
		if p.opts.nodeHook != nil {
			p.opts.nodeHook(ev.Name)
		}
	}

	if wantOpen {
		start := &StartElement{
			Name:  ev.Name,
			Path:  f.path,
			Attrs: attrs,
			Pos:   pos,
			Depth: depth,
		}
		for _, e := range f.matched {
			h := p.handlers[e.ID]
			if h.Open == nil {
				continue
			}
			if err := h.Open(start); err != nil {
				if errors.Is(err, ErrStop) {
					return nil, ErrStop
				}
				return nil, &globerrors.Handler{Path: f.path, Element: f.name, Err: err}
			}
		}
	}
	return f, nil
}

// closeElement fires close handlers for an assembled node, most specific
// pattern first.
func (p *Parser) closeElement(f *frame, node *Node) error {
	for _, e := range f.matched {
		h := p.handlers[e.ID]
		if h.Close == nil {
			continue
		}
		if err := h.Close(node); err != nil {
			if errors.Is(err, ErrStop) {
				return ErrStop
			}
			return &globerrors.Handler{Path: f.path, Element: f.name, Err: err}
		}
	}
	return nil
}

// textMode combines the whitespace modes of every pattern with an interest
// in this frame; the most aggressive one wins. Frames materializing only for
// their parent inherit the parent's mode.
func (p *Parser) textMode(parent *frame, matched []*match.Entry) whitespace.Mode {
	mode := whitespace.Keep
	contributed := false
	for _, e := range matched {
		if !e.WantsTree {
			continue
		}
		mode = whitespace.Combine(mode, p.handlers[e.ID].Whitespace)
		contributed = true
	}
	if parent.materializing {
		if contributed {
			return whitespace.Combine(mode, parent.mode)
		}
		return parent.mode
	}
	return mode
}

func attrMap(attrs []xmlevents.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Name] = a.Value
	}
	return out
}
