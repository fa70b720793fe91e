package jsast

func synth(kind, value string, children ...*Node) *Node {
	n := &Node{Kind: kind, Named: true, Value: value, Start: -1, End: -1, synthetic: true}
	for _, c := range children {
		n.adopt(c)
	}
	return n
}

func (n *Node) adopt(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

func withField(field string, n *Node) *Node {
	n.Field = field
	return n
}

// Ident builds an identifier reference.
func Ident(name string) *Node { return synth("identifier", name) }

// StringLit builds a string literal holding value.
func StringLit(value string) *Node { return synth("string", value) }

// TemplateLit builds a template literal. quasis hold raw template text and
// must have exactly one more element than exprs.
func TemplateLit(quasis []string, exprs []*Node) *Node {
	t := synth("template_string", "")
	for i, q := range quasis {
		t.adopt(synth("string_fragment", q))
		if i < len(exprs) {
			t.adopt(synth("template_substitution", "", exprs[i]))
		}
	}
	return t
}

// ArrayLit builds an array literal.
func ArrayLit(elems ...*Node) *Node { return synth("array", "", elems...) }

// NewExpr builds `new callee(args...)`.
func NewExpr(callee *Node, args ...*Node) *Node {
	return synth("new_expression", "",
		withField("constructor", callee),
		withField("arguments", synth("arguments", "", args...)))
}

// Member builds `object.property`.
func Member(object *Node, property string) *Node {
	return synth("member_expression", "",
		withField("object", object),
		withField("property", synth("property_identifier", property)))
}

// Assign builds `left = right`.
func Assign(left, right *Node) *Node {
	return synth("assignment_expression", "", withField("left", left), withField("right", right))
}

// ExprStmt wraps an expression in a statement.
func ExprStmt(expr *Node) *Node { return synth("expression_statement", "", expr) }

// ConstDecl builds `const name = init;`.
func ConstDecl(name string, init *Node) *Node {
	decl := synth("variable_declarator", "", withField("name", Ident(name)), withField("value", init))
	return synth("lexical_declaration", "const", decl)
}

// Clone deep-copies n. Parsed nodes keep their spans so the copy prints
// the same source text.
func Clone(n *Node) *Node {
	c := &Node{
		Kind:      n.Kind,
		Field:     n.Field,
		Named:     n.Named,
		Start:     n.Start,
		End:       n.End,
		Value:     n.Value,
		synthetic: n.synthetic,
		holes:     append([]span(nil), n.holes...),
		file:      n.file,
	}
	for _, child := range n.Children {
		c.adopt(Clone(child))
	}
	return c
}
