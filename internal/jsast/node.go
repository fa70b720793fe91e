// Package jsast holds a mutable JavaScript syntax tree built from a
// tree-sitter parse.
//
// The tree keeps every node tree-sitter produces, anonymous tokens
// included, together with its byte span in the original source. Printing
// splices the original text back together around the nodes that were
// replaced, inserted or removed, so untouched code is reproduced byte for
// byte.
package jsast

import (
	"sort"
)

// Node is a single syntax node.
type Node struct {
	Kind  string // tree-sitter node kind: "call_expression", "identifier", ...
	Field string // role inside the parent: "function", "arguments", "name", ...
	Named bool

	Parent   *Node
	Children []*Node

	// Start and End are byte offsets into File.Source. Nodes inserted
	// into a statement list have -1; replacements inherit the span of the
	// node they replaced.
	Start, End int

	// Value is the payload of synthesized nodes: identifier names, cooked
	// string values, raw template text, declaration keywords.
	Value string

	synthetic bool
	holes     []span
	file      *File
}

type span struct{ start, end int }

// File is one parsed compilation unit.
type File struct {
	Name   string
	Source []byte
	Root   *Node

	lineStarts []int
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// Synthetic reports whether n was built by the rewriter rather than parsed.
func (n *Node) Synthetic() bool { return n.synthetic }

// Source returns the original source text of a parsed node. Synthesized
// nodes return their Value.
func (n *Node) Source() string {
	if n.synthetic || n.file == nil || n.Start < 0 {
		return n.Value
	}
	return string(n.file.Source[n.Start:n.End])
}

// Child returns the first child playing the given field role.
func (n *Node) Child(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// NamedChildren returns the named, non-comment children of n.
func (n *Node) NamedChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Named && c.Kind != "comment" {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamed returns the first named, non-comment child or nil.
func (n *Node) FirstNamed() *Node {
	for _, c := range n.Children {
		if c.Named && c.Kind != "comment" {
			return c
		}
	}
	return nil
}

// Index returns the position of n in its parent's children, or -1.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// FindParent returns the nearest ancestor of n satisfying pred.
func (n *Node) FindParent(pred func(*Node) bool) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if pred(p) {
			return p
		}
	}
	return nil
}

// Encloses reports whether d is n or one of its descendants.
func (n *Node) Encloses(d *Node) bool {
	for ; d != nil; d = d.Parent {
		if d == n {
			return true
		}
	}
	return false
}

// Pos returns the position of the node start. Synthesized nodes without a
// span report the zero Position.
func (n *Node) Pos() Position {
	if n.file == nil || n.Start < 0 {
		return Position{}
	}
	return n.file.Position(n.Start)
}

// File returns the compilation unit that owns n.
func (n *Node) File() *File { return n.file }

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Position converts a byte offset into a 1-based line and column.
func (f *File) Position(offset int) Position {
	if f.lineStarts == nil {
		f.lineStarts = []int{0}
		for i, b := range f.Source {
			if b == '\n' {
				f.lineStarts = append(f.lineStarts, i+1)
			}
		}
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - f.lineStarts[line] + 1}
}

// Line returns the text of a 1-based source line without its newline.
func (f *File) Line(line int) string {
	f.Position(0)
	if line < 1 || line > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[line-1]
	end := len(f.Source)
	if line < len(f.lineStarts) {
		end = f.lineStarts[line] - 1
	}
	if end > start && f.Source[end-1] == '\r' {
		end--
	}
	return string(f.Source[start:end])
}
