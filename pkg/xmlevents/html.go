package xmlevents

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never carry content in HTML; their start tags are emitted as
// an open immediately followed by a synthetic close.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// HTMLReader adapts a golang.org/x/net/html tokenizer into a Source.
//
// HTML input does not guarantee balanced tags, so the reader repairs the
// stream into strict stack discipline: void and self-closing elements close
// immediately, stray end tags are dropped, end tags that skip levels emit
// synthetic closes for the levels skipped, and elements still open at end of
// input are closed before io.EOF is reported.
type HTMLReader struct {
	tz    *html.Tokenizer
	open  []string
	queue []Event
	atEOF bool
}

// NewHTMLReader creates a source reading an HTML document from r. The input
// must already be in UTF-8; charset sniffing belongs to the caller.
func NewHTMLReader(r io.Reader) *HTMLReader {
	return &HTMLReader{tz: html.NewTokenizer(r)}
}

// Next returns the next repaired open, text or close event.
func (h *HTMLReader) Next() (Event, error) {
	for {
		if len(h.queue) > 0 {
			ev := h.queue[0]
			h.queue = h.queue[1:]
			return ev, nil
		}
		if h.atEOF {
			return Event{}, io.EOF
		}
		switch h.tz.Next() {
		case html.ErrorToken:
			err := h.tz.Err()
			if err != io.EOF {
				return Event{}, err
			}
			h.atEOF = true
			// Close everything still open, innermost first.
			for i := len(h.open) - 1; i >= 0; i-- {
				h.queue = append(h.queue, Event{Kind: KindClose, Name: h.open[i]})
			}
			h.open = h.open[:0]
		case html.StartTagToken:
			tok := h.tz.Token()
			ev := Event{Kind: KindOpen, Name: tok.Data, Attrs: h.htmlAttrs(tok.Attr)}
			if voidElements[tok.DataAtom] {
				h.queue = append(h.queue, Event{Kind: KindClose, Name: tok.Data})
				return ev, nil
			}
			h.open = append(h.open, tok.Data)
			return ev, nil
		case html.SelfClosingTagToken:
			tok := h.tz.Token()
			h.queue = append(h.queue, Event{Kind: KindClose, Name: tok.Data})
			return Event{Kind: KindOpen, Name: tok.Data, Attrs: h.htmlAttrs(tok.Attr)}, nil
		case html.EndTagToken:
			name, _ := h.tz.TagName()
			h.closeTo(string(name))
		case html.TextToken:
			if len(h.open) == 0 {
				continue
			}
			return Event{Kind: KindText, Text: h.tz.Text()}, nil
		default:
			// comment or doctype
		}
	}
}

// closeTo queues closes down to and including the innermost open element
// named name; an end tag naming no open element is dropped.
func (h *HTMLReader) closeTo(name string) {
	at := -1
	for i := len(h.open) - 1; i >= 0; i-- {
		if h.open[i] == name {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for i := len(h.open) - 1; i >= at; i-- {
		h.queue = append(h.queue, Event{Kind: KindClose, Name: h.open[i]})
	}
	h.open = h.open[:at]
}

func (h *HTMLReader) htmlAttrs(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: a.Key, Value: a.Val})
	}
	return out
}
