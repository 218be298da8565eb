// Package tree assembles in-memory element nodes for frames under active
// interest: attributes, document-ordered content, per-name child indices and
// normalized text.
package tree

import (
	"strings"

	"github.com/gitpan/XML-Parser-GlobEvents/internal/whitespace"
)

// Content is one entry of a node's ordered content list: either a text
// segment (Node nil) or a completed child element.
type Content struct {
	Text string
	Node *Node
}

// Node is the assembled representation of one element and everything nested
// inside it, delivered to close handlers.
type Node struct {
	Name  string
	Path  string
	Attrs map[string]string
	// Pos is the 1-based position among same-named siblings under the
	// same parent.
	Pos int
	// Content holds interleaved text segments and child nodes in document
	// order.
	Content []Content
	// Text is the concatenation of the node's own top-level text segments,
	// already normalized.
	Text string
	// Child indexes the last closed child per tag name.
	Child map[string]*Node
	// Children indexes all closed children per tag name, in document order.
	Children map[string][]*Node
}

// Find walks literal name segments separated by '/' through the last-child
// index and returns the node at the end of the path, or nil.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, name := range strings.Split(path, "/") {
		if cur == nil || name == "" {
			return nil
		}
		cur = cur.Child[name]
	}
	return cur
}

// FindAll is like Find but returns every child matching the final segment.
func (n *Node) FindAll(path string) []*Node {
	i := strings.LastIndexByte(path, '/')
	cur := n
	if i >= 0 {
		cur = n.Find(path[:i])
		path = path[i+1:]
	}
	if cur == nil || path == "" {
		return nil
	}
	return cur.Children[path]
}

// String renders the node compactly for diagnostics: name, position and the
// normalized text, with child names in document order.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Name)
	b.WriteByte('>')
	if n.Text != "" {
		b.WriteString(n.Text)
	}
	for _, c := range n.Content {
		if c.Node != nil {
			b.WriteString(c.Node.String())
		}
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
	return b.String()
}

// Builder incrementally assembles one node. Text events accumulate into a
// pending buffer that is flushed, with the whitespace mode applied, when a
// child element opens or the node is finished; this keeps normalization
// spanning consecutive tokenizer text events.
type Builder struct {
	node    *Node
	mode    whitespace.Mode
	pending strings.Builder
}

// NewBuilder starts a node for the given element.
func NewBuilder(name, path string, attrs map[string]string, pos int, mode whitespace.Mode) *Builder {
	return &Builder{
		node: &Node{
			Name:  name,
			Path:  path,
			Attrs: attrs,
			Pos:   pos,
		},
		mode: mode,
	}
}

// AppendText buffers a character-data event.
func (b *Builder) AppendText(text []byte) {
	b.pending.Write(text)
}

// AddChild flushes pending text and appends a completed child node, indexing
// it under its tag name.
func (b *Builder) AddChild(child *Node) {
	b.flushText()
	n := b.node
	n.Content = append(n.Content, Content{Node: child})
	if n.Child == nil {
		n.Child = make(map[string]*Node)
		n.Children = make(map[string][]*Node)
	}
	n.Child[child.Name] = child
	n.Children[child.Name] = append(n.Children[child.Name], child)
}

// Finish flushes pending text, derives the concatenated top-level text and
// returns the completed node. The builder must not be used afterwards.
func (b *Builder) Finish() *Node {
	b.flushText()
	var text strings.Builder
	for _, c := range b.node.Content {
		if c.Node == nil {
			text.WriteString(c.Text)
		}
	}
	b.node.Text = text.String()
	return b.node
}

func (b *Builder) flushText() {
	if b.pending.Len() == 0 {
		return
	}
	text := whitespace.Apply(b.mode, b.pending.String())
	b.pending.Reset()
	if text == "" {
		return
	}
	b.node.Content = append(b.node.Content, Content{Text: text})
}
