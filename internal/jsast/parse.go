package jsast

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// fieldNames lists the grammar fields the rewriter and scope resolver look
// at. Children are tagged with the first matching field.
var fieldNames = []string{
	"name", "value", "left", "right", "object", "property",
	"function", "arguments", "parameter", "parameters", "body",
	"declaration", "source", "kind", "key", "index", "alias",
	"initializer", "condition", "increment", "constructor", "label",
}

// parserPool is a pool of reusable JavaScript parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}
		return parser
	},
}

// SyntaxError reports source the grammar could not parse.
type SyntaxError struct {
	File string
	Pos  Position
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error near %q", e.File, e.Pos.Line, e.Pos.Column, e.Text)
}

// Parse parses JavaScript (JSX included) into a File.
func Parse(name string, source []byte) (*File, error) {
	parser := parserPool.Get().(*sitter.Parser)
	defer parserPool.Put(parser)
	parser.Reset()

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", name)
	}
	defer tree.Close()

	f := &File{Name: name, Source: source}
	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		start := int(bad.StartByte())
		end := int(bad.EndByte())
		if end > start+40 {
			end = start + 40
		}
		return nil, &SyntaxError{File: name, Pos: f.Position(start), Text: string(source[start:end])}
	}

	f.Root = convert(root, f)
	return f, nil
}

func convert(tn *sitter.Node, f *File) *Node {
	n := &Node{
		Kind:  tn.Kind(),
		Named: tn.IsNamed(),
		Start: int(tn.StartByte()),
		End:   int(tn.EndByte()),
		file:  f,
	}

	count := tn.ChildCount()
	if count == 0 {
		return n
	}

	n.Children = make([]*Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := convert(tn.Child(i), f)
		child.Parent = n
		n.Children = append(n.Children, child)
	}

	for _, field := range fieldNames {
		fn := tn.ChildByFieldName(field)
		if fn == nil {
			continue
		}
		start, end, kind := int(fn.StartByte()), int(fn.EndByte()), fn.Kind()
		for _, c := range n.Children {
			if c.Field == "" && c.Start == start && c.End == end && c.Kind == kind {
				c.Field = field
				break
			}
		}
	}

	return n
}

// firstError returns the first ERROR or MISSING node under n.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	return n
}
