package jsast

import (
	"errors"
	"fmt"
)

// ErrDetached is returned when a mutation targets a node without a parent.
var ErrDetached = errors.New("node is not attached to a parent")

// Replace puts repl in the place of old. The replacement inherits the
// span of old so printing keeps the surrounding source intact.
func Replace(old, repl *Node) error {
	idx := old.Index()
	if idx < 0 {
		return fmt.Errorf("replace %s: %w", old.Kind, ErrDetached)
	}
	parent := old.Parent
	repl.Parent = parent
	repl.Field = old.Field
	repl.Start, repl.End = old.Start, old.End
	repl.synthetic = true
	if repl.file == nil {
		repl.file = old.file
	}
	parent.Children[idx] = repl
	old.Parent = nil
	return nil
}

// InsertBefore inserts statements into anchor's statement list, in order,
// immediately before anchor.
func InsertBefore(anchor *Node, stmts ...*Node) error {
	idx := anchor.Index()
	if idx < 0 {
		return fmt.Errorf("insert before %s: %w", anchor.Kind, ErrDetached)
	}
	anchor.Parent.insertAt(idx, stmts)
	return nil
}

// InsertAfter inserts statements, in order, after anchor and after any
// statements already inserted after it.
func InsertAfter(anchor *Node, stmts ...*Node) error {
	idx := anchor.Index()
	if idx < 0 {
		return fmt.Errorf("insert after %s: %w", anchor.Kind, ErrDetached)
	}
	kids := anchor.Parent.Children
	idx++
	for idx < len(kids) && kids[idx].Start < 0 {
		idx++
	}
	anchor.Parent.insertAt(idx, stmts)
	return nil
}

func (n *Node) insertAt(idx int, stmts []*Node) {
	for _, s := range stmts {
		s.Parent = n
		s.Start, s.End = -1, -1
		if s.file == nil {
			s.file = n.file
		}
	}
	kids := make([]*Node, 0, len(n.Children)+len(stmts))
	kids = append(kids, n.Children[:idx]...)
	kids = append(kids, stmts...)
	kids = append(kids, n.Children[idx:]...)
	n.Children = kids
}

// Remove deletes n from its parent. A parsed statement that sits alone on
// its lines is removed together with its indentation and line break.
func Remove(n *Node) error {
	idx := n.Index()
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", n.Kind, ErrDetached)
	}
	parent := n.Parent
	parent.Children = append(parent.Children[:idx:idx], parent.Children[idx+1:]...)
	n.Parent = nil

	if n.Start < 0 || n.file == nil {
		return nil
	}
	src := n.file.Source
	start, end := n.Start, n.End

	lineStart := start
	for lineStart > 0 && (src[lineStart-1] == ' ' || src[lineStart-1] == '\t') {
		lineStart--
	}
	if lineStart == 0 || src[lineStart-1] == '\n' {
		lineEnd := end
		for lineEnd < len(src) && (src[lineEnd] == ' ' || src[lineEnd] == '\t' || src[lineEnd] == '\r') {
			lineEnd++
		}
		if lineEnd == len(src) || src[lineEnd] == '\n' {
			start = lineStart
			end = lineEnd
			if end < len(src) {
				end++
			}
		}
	}

	parent.holes = append(parent.holes, span{start: start, end: end})
	return nil
}
