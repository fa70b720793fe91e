package jsast

// IsBound reports whether name is declared in a scope enclosing ref:
// block and program declarations (var hoisting included), imports,
// function parameters and names, catch parameters, for-loop heads and
// class names. Temporal dead zones are not modelled.
func IsBound(ref *Node, name string) bool {
	return BindingScope(ref, name) != nil
}

// BindingScope returns the nearest node enclosing ref that declares name,
// or nil when name is free at ref.
func BindingScope(ref *Node, name string) *Node {
	for scope := ref.Parent; scope != nil; scope = scope.Parent {
		if declares(scope, name) {
			return scope
		}
	}
	return nil
}

func declares(scope *Node, name string) bool {
	switch scope.Kind {
	case "program", "statement_block", "class_static_block", "switch_case", "switch_default":
		for _, stmt := range scope.Children {
			if statementDeclares(stmt, name) {
				return true
			}
		}
		return hoistedVar(scope, name)

	case "arrow_function", "function_expression", "function", "function_declaration",
		"generator_function", "generator_function_declaration", "method_definition":
		if name == "arguments" && scope.Kind != "arrow_function" {
			return true
		}
		if p := scope.Child("parameter"); p != nil && patternDeclares(p, name) {
			return true
		}
		if params := scope.Child("parameters"); params != nil {
			for _, p := range params.NamedChildren() {
				if patternDeclares(p, name) {
					return true
				}
			}
		}
		if scope.Kind == "function_expression" || scope.Kind == "function" || scope.Kind == "generator_function" {
			if n := scope.Child("name"); n != nil && n.Source() == name {
				return true
			}
		}

	case "for_statement":
		if init := scope.Child("initializer"); init != nil && statementDeclares(init, name) {
			return true
		}

	case "for_in_statement":
		if left := scope.Child("left"); left != nil && patternDeclares(left, name) {
			return true
		}

	case "catch_clause":
		if p := scope.Child("parameter"); p != nil && patternDeclares(p, name) {
			return true
		}

	case "class_declaration", "class":
		if n := scope.Child("name"); n != nil && n.Source() == name {
			return true
		}
	}
	return false
}

// statementDeclares reports whether a statement in a statement list binds
// name in that list's scope.
func statementDeclares(stmt *Node, name string) bool {
	switch stmt.Kind {
	case "lexical_declaration", "variable_declaration":
		for _, d := range stmt.NamedChildren() {
			if d.Kind == "variable_declarator" {
				if p := d.Child("name"); p != nil && patternDeclares(p, name) {
					return true
				}
			}
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if n := stmt.Child("name"); n != nil && n.Source() == name {
			return true
		}
	case "export_statement":
		if d := stmt.Child("declaration"); d != nil {
			return statementDeclares(d, name)
		}
	case "import_statement":
		for _, local := range ImportLocals(stmt) {
			if local == name {
				return true
			}
		}
	}
	return false
}

// hoistedVar looks for `var` declarations below scope that are not nested
// in another function.
func hoistedVar(scope *Node, name string) bool {
	found := false
	for _, c := range scope.Children {
		Walk(c, func(n *Node) bool {
			if found {
				return false
			}
			switch n.Kind {
			case "function_declaration", "function_expression", "function", "arrow_function",
				"generator_function", "generator_function_declaration", "method_definition", "class_body":
				return false
			case "variable_declaration":
				found = statementDeclares(n, name)
				return false
			}
			return true
		})
	}
	return found
}

// patternDeclares reports whether a binding pattern introduces name.
func patternDeclares(p *Node, name string) bool {
	switch p.Kind {
	case "identifier", "shorthand_property_identifier_pattern":
		return p.Source() == name
	case "pair_pattern":
		if v := p.Child("value"); v != nil {
			return patternDeclares(v, name)
		}
		return false
	case "assignment_pattern", "object_assignment_pattern":
		if l := p.Child("left"); l != nil {
			return patternDeclares(l, name)
		}
		return false
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range p.NamedChildren() {
			if patternDeclares(c, name) {
				return true
			}
		}
	}
	return false
}

// ImportSource returns the unquoted module specifier of an import statement.
func ImportSource(stmt *Node) string {
	src := stmt.Child("source")
	if src == nil {
		return ""
	}
	return StringValue(src)
}

// ImportLocals returns the local names an import statement binds, in
// source order.
func ImportLocals(stmt *Node) []string {
	var names []string
	for _, c := range stmt.Children {
		if c.Kind != "import_clause" {
			continue
		}
		for _, spec := range c.NamedChildren() {
			switch spec.Kind {
			case "identifier":
				names = append(names, spec.Source())
			case "namespace_import":
				if id := spec.FirstNamed(); id != nil {
					names = append(names, id.Source())
				}
			case "named_imports":
				for _, s := range spec.NamedChildren() {
					if s.Kind != "import_specifier" {
						continue
					}
					if alias := s.Child("alias"); alias != nil {
						names = append(names, alias.Source())
					} else if n := s.Child("name"); n != nil {
						names = append(names, n.Source())
					}
				}
			}
		}
	}
	return names
}

// StringValue returns the contents of a string literal node without its
// quotes. Escape sequences are kept as written.
func StringValue(n *Node) string {
	if n.synthetic {
		return n.Value
	}
	s := n.Source()
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
