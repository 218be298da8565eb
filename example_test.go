package globevents_test

import (
	"fmt"
	"strings"

	globevents "github.com/gitpan/XML-Parser-GlobEvents"
)

func ExampleParser_OnClose() {
	doc := `<library>
		<book id="1"><title>  The  Go  Programming  Language </title></book>
		<book id="2"><title> The Practice of Programming </title></book>
	</library>`

	parser := globevents.New()
	err := parser.OnClose("library/book", func(n *globevents.Node) error {
		fmt.Printf("book %s: %s\n", n.Attrs["id"], n.Child["title"].Text)
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := parser.Parse(strings.NewReader(doc)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	// Output:
	// book 1: The Go Programming Language
	// book 2: The Practice of Programming
}

func ExampleParser_On() {
	doc := `<feed><entry><id>a</id></entry><entry><id>b</id></entry></feed>`

	parser := globevents.New()
	err := parser.On("feed/entry", globevents.Handler{
		Open: func(e *globevents.StartElement) error {
			fmt.Printf("entry %d opens at %s\n", e.Pos, e.Path)
			return nil
		},
		Close: func(n *globevents.Node) error {
			fmt.Printf("entry %d id=%s\n", n.Pos, n.Child["id"].Text)
			return nil
		},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := parser.Parse(strings.NewReader(doc)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	// Output:
	// entry 1 opens at /feed/entry
	// entry 1 id=a
	// entry 2 opens at /feed/entry
	// entry 2 id=b
}

func ExampleErrStop() {
	doc := `<log><line>first</line><line>second</line><line>third</line></log>`

	parser := globevents.New()
	err := parser.OnClose("line", func(n *globevents.Node) error {
		fmt.Println(n.Text)
		if n.Pos == 2 {
			return globevents.ErrStop
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := parser.Parse(strings.NewReader(doc)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	// Output:
	// first
	// second
}
