package xmlevents

import (
	"io"
	"strings"
	"testing"
)

func collectHTML(t *testing.T, doc string) []Event {
	t.Helper()
	var out []Event
	src := NewHTMLReader(strings.NewReader(doc))
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if ev.Kind == KindText {
			ev.Text = append([]byte(nil), ev.Text...)
		}
		out = append(out, ev)
	}
}

// depthWalk verifies strict stack discipline: closes always name the
// innermost open element and the stream ends balanced.
func depthWalk(t *testing.T, events []Event) {
	t.Helper()
	var stack []string
	for i, ev := range events {
		switch ev.Kind {
		case KindOpen:
			stack = append(stack, ev.Name)
		case KindClose:
			if len(stack) == 0 {
				t.Fatalf("event %d: close <%s> with empty stack", i, ev.Name)
			}
			if top := stack[len(stack)-1]; top != ev.Name {
				t.Fatalf("event %d: close <%s>, open element is <%s>", i, ev.Name, top)
			}
			stack = stack[:len(stack)-1]
		case KindText:
			if len(stack) == 0 {
				t.Fatalf("event %d: text outside any element", i)
			}
		}
	}
	if len(stack) != 0 {
		t.Fatalf("unclosed elements at EOF: %v", stack)
	}
}

func TestHTMLReaderVoidElements(t *testing.T) {
	events := collectHTML(t, `<div>a<br>b<img src="x">c</div>`)
	depthWalk(t, events)

	var names []string
	for _, ev := range events {
		if ev.Kind == KindOpen {
			names = append(names, ev.Name)
		}
	}
	want := []string{"div", "br", "img"}
	if len(names) != len(want) {
		t.Fatalf("opens = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("opens = %v, want %v", names, want)
		}
	}
}

func TestHTMLReaderSelfClosing(t *testing.T) {
	events := collectHTML(t, `<div><x/>tail</div>`)
	depthWalk(t, events)
}

func TestHTMLReaderRepairsUnbalancedInput(t *testing.T) {
	// Stray </em> is dropped; the unclosed <li> elements are closed when
	// </ul> arrives; <p> left open at EOF is closed before EOF.
	events := collectHTML(t, `<ul><li>one<li>two</em></ul><p>tail`)
	depthWalk(t, events)
}

func TestHTMLReaderSkipsTopLevelText(t *testing.T) {
	events := collectHTML(t, "stray<div>kept</div>")
	depthWalk(t, events)
	for _, ev := range events {
		if ev.Kind == KindText && string(ev.Text) == "stray" {
			t.Fatal("text outside any element was emitted")
		}
	}
}
