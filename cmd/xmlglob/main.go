// Command xmlglob matches path patterns against an XML or HTML document and
// prints the selected subtrees.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	globevents "github.com/gitpan/XML-Parser-GlobEvents"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

type patternList []string

func (p *patternList) String() string { return strings.Join(*p, ",") }

func (p *patternList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmlglob", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var patterns patternList
	fs.Var(&patterns, "pattern", "path pattern to match (repeatable)")
	mode := fs.String("mode", "normalize", "whitespace mode: normalize, trim, collapse or keep")
	htmlInput := fs.Bool("html", false, "treat the input as HTML")
	countOnly := fs.Bool("count", false, "print match counts per pattern instead of subtrees")
	fs.Usage = func() {
		_ = writef(stderr, "Usage: %s -pattern <path> [-pattern <path>]... [options] <document>\n\n", os.Args[0])
		_ = writeln(stderr, "Prints the subtree of every element matched by a pattern.")
		_ = writeln(stderr, "")
		_ = writeln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if len(patterns) == 0 {
		_ = writeln(stderr, "error: at least one -pattern is required")
		fs.Usage()
		return 2
	}
	if len(fs.Args()) != 1 {
		_ = writeln(stderr, "error: exactly one document argument is required")
		fs.Usage()
		return 2
	}

	ws, err := globevents.ParseWhitespace(*mode)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 2
	}

	parser := globevents.New()
	counts := make(map[string]int, len(patterns))
	for _, pat := range patterns {
		pat := pat
		err := parser.On(pat, globevents.Handler{
			Whitespace: ws,
			Close: func(n *globevents.Node) error {
				counts[pat]++
				if *countOnly {
					return nil
				}
				return printNode(stdout, pat, n)
			},
		})
		if err != nil {
			_ = writef(stderr, "error: %v\n", err)
			return 2
		}
	}

	if err := parseDocument(parser, fs.Arg(0), *htmlInput); err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}

	if *countOnly {
		for _, pat := range patterns {
			if err := writef(stdout, "%s\t%d\n", pat, counts[pat]); err != nil {
				return 1
			}
		}
	}
	return 0
}

func parseDocument(parser *globevents.Parser, path string, htmlInput bool) error {
	if !htmlInput {
		return parser.ParseFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := parser.ParseHTML(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printNode(w io.Writer, pat string, n *globevents.Node) error {
	if err := writef(w, "%s\t%s", pat, n.Path); err != nil {
		return err
	}
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := writef(w, " %s=%q", name, n.Attrs[name]); err != nil {
			return err
		}
	}
	return writef(w, "\n\t%s\n", n.String())
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
