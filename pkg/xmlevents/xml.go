package xmlevents

import (
	"encoding/xml"
	"errors"
	"io"
)

// XMLReader adapts an encoding/xml decoder into a Source. Entities are
// decoded and character data re-encoded by the decoder; namespace
// declarations are dropped and element and attribute names reduced to their
// local parts.
type XMLReader struct {
	dec   *xml.Decoder
	depth int
	done  bool
}

// NewXMLReader creates a source reading one XML document from r.
func NewXMLReader(r io.Reader) *XMLReader {
	return &XMLReader{dec: xml.NewDecoder(r)}
}

// Next returns the next open, text or close event. Comments, processing
// instructions and directives are skipped. After the root element closes the
// source reports io.EOF, ignoring trailing whitespace.
func (x *XMLReader) Next() (Event, error) {
	for {
		tok, err := x.dec.Token()
		if err != nil {
			return Event{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if x.done {
				return Event{}, errors.New("content after document element")
			}
			x.depth++
			return Event{Kind: KindOpen, Name: t.Name.Local, Attrs: decodeAttrs(t.Attr)}, nil
		case xml.EndElement:
			x.depth--
			if x.depth == 0 {
				x.done = true
			}
			return Event{Kind: KindClose, Name: t.Name.Local}, nil
		case xml.CharData:
			if x.depth == 0 {
				continue // prolog or trailing whitespace
			}
			return Event{Kind: KindText, Text: t}, nil
		default:
			// comment, processing instruction or directive
		}
	}
}

// Position returns the tokenizer line and column for err when the underlying
// decoder reported a syntax error, or zeros.
func Position(err error) (line, column int) {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return syn.Line, 0
	}
	return 0, 0
}

func decodeAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return out
}
