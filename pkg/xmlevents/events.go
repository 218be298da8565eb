package xmlevents

// Kind identifies an event type.
type Kind int

const (
	// KindOpen reports an element start tag.
	KindOpen Kind = iota
	// KindText reports character data inside the current element.
	KindText
	// KindClose reports an element end tag.
	KindClose
)

// Attr is one decoded attribute of an open event.
type Attr struct {
	Name  string
	Value string
}

// Event is one tokenizer notification. Name is set for open and close
// events, Attrs for open events, Text for text events. Text aliases a
// buffer owned by the source and is only valid until the next call to Next.
type Event struct {
	Kind  Kind
	Name  string
	Attrs []Attr
	Text  []byte
}

// Source yields tokenizer events in document order. It returns io.EOF at end
// of input. Implementations guarantee stack discipline: every open event is
// paired with exactly one later close event at the same depth.
type Source interface {
	Next() (Event, error)
}
