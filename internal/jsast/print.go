package jsast

import (
	"bytes"
	"sort"
	"strings"
)

// Print renders the file, reusing original source text for every parsed
// node and generating code for synthesized ones.
func (f *File) Print() []byte {
	var buf bytes.Buffer
	p := &printer{src: f.Source, buf: &buf}
	if f.Root == nil {
		buf.Write(f.Source)
		return buf.Bytes()
	}
	buf.Write(f.Source[:f.Root.Start])
	p.node(f.Root)
	buf.Write(f.Source[f.Root.End:])
	return buf.Bytes()
}

// Print renders a single node.
func Print(n *Node) string {
	var buf bytes.Buffer
	var src []byte
	Walk(n, func(c *Node) bool {
		if c.file != nil {
			src = c.file.Source
		}
		return src == nil
	})
	p := &printer{src: src, buf: &buf}
	p.node(n)
	return buf.String()
}

type printer struct {
	src []byte
	buf *bytes.Buffer
}

func (p *printer) node(n *Node) {
	if n.synthetic || n.Start < 0 {
		p.generate(n)
		return
	}
	p.splice(n)
}

// splice writes a parsed node: original text between children, children
// printed recursively. Runs of inserted statements are placed on their own
// lines with the indentation of their neighbours.
func (p *printer) splice(n *Node) {
	cursor := n.Start
	prev := -1
	kids := n.Children
	for i := 0; i < len(kids); i++ {
		c := kids[i]
		if c.Start >= 0 {
			p.gap(n, cursor, c.Start)
			p.node(c)
			cursor = c.End
			prev = c.Start
			continue
		}

		j := i
		for j < len(kids) && kids[j].Start < 0 {
			j++
		}
		run := kids[i:j]
		if j < len(kids) && (kids[j].Named || prev < 0) {
			next := kids[j]
			p.gap(n, cursor, next.Start)
			indent := p.indentOf(next.Start)
			for _, s := range run {
				p.node(s)
				p.buf.WriteString("\n" + indent)
			}
			cursor = next.Start
		} else {
			indent := ""
			if prev >= 0 {
				indent = p.indentOf(prev)
			}
			for _, s := range run {
				p.buf.WriteString("\n" + indent)
				p.node(s)
			}
		}
		i = j - 1
	}
	p.gap(n, cursor, n.End)
}

// gap writes src[from:to] minus the holes left by removed children.
func (p *printer) gap(n *Node, from, to int) {
	if from >= to {
		return
	}
	if len(n.holes) == 0 {
		p.buf.Write(p.src[from:to])
		return
	}
	holes := append([]span(nil), n.holes...)
	sort.Slice(holes, func(i, j int) bool { return holes[i].start < holes[j].start })
	pos := from
	for _, h := range holes {
		if h.end <= pos || h.start >= to {
			continue
		}
		if h.start > pos {
			p.buf.Write(p.src[pos:h.start])
		}
		pos = h.end
	}
	if pos < to {
		p.buf.Write(p.src[pos:to])
	}
}

// indentOf returns the leading whitespace of the line containing offset.
func (p *printer) indentOf(offset int) string {
	start := offset
	for start > 0 && p.src[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (p.src[end] == ' ' || p.src[end] == '\t') {
		end++
	}
	return string(p.src[start:end])
}

func (p *printer) generate(n *Node) {
	switch n.Kind {
	case "identifier", "property_identifier":
		p.buf.WriteString(n.Value)
	case "string":
		p.buf.WriteString(Quote(n.Value))
	case "template_string":
		p.buf.WriteByte('`')
		for _, c := range n.Children {
			if c.Kind == "template_substitution" {
				p.buf.WriteString("${")
				p.list(c.Children, "")
				p.buf.WriteString("}")
				continue
			}
			p.buf.WriteString(c.Value)
		}
		p.buf.WriteByte('`')
	case "array":
		p.buf.WriteByte('[')
		p.list(n.Children, ", ")
		p.buf.WriteByte(']')
	case "arguments":
		p.buf.WriteByte('(')
		p.list(n.Children, ", ")
		p.buf.WriteByte(')')
	case "new_expression":
		p.buf.WriteString("new ")
		p.node(n.Child("constructor"))
		p.node(n.Child("arguments"))
	case "member_expression":
		p.node(n.Child("object"))
		p.buf.WriteByte('.')
		p.node(n.Child("property"))
	case "assignment_expression":
		p.node(n.Child("left"))
		p.buf.WriteString(" = ")
		p.node(n.Child("right"))
	case "variable_declarator":
		p.node(n.Child("name"))
		if v := n.Child("value"); v != nil {
			p.buf.WriteString(" = ")
			p.node(v)
		}
	case "expression_statement":
		p.list(n.Children, "")
		p.buf.WriteByte(';')
	case "lexical_declaration", "variable_declaration":
		p.buf.WriteString(n.Value + " ")
		p.list(n.Children, ", ")
		p.buf.WriteByte(';')
	default:
		if len(n.Children) == 0 {
			p.buf.WriteString(n.Value)
			return
		}
		p.list(n.Children, "")
	}
}

func (p *printer) list(nodes []*Node, sep string) {
	for i, c := range nodes {
		if i > 0 {
			p.buf.WriteString(sep)
		}
		p.node(c)
	}
}

// Quote renders s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
