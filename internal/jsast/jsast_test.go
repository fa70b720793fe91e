package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse("test.js", []byte(src))
	require.NoError(t, err)
	return f
}

func find(f *File, kind string) *Node {
	var found *Node
	Walk(f.Root, func(n *Node) bool {
		if found == nil && n.Kind == kind {
			found = n
		}
		return found == nil
	})
	return found
}

func findIdent(f *File, name string) *Node {
	var found *Node
	Walk(f.Root, func(n *Node) bool {
		if found == nil && n.Kind == "identifier" && n.Source() == name {
			found = n
		}
		return found == nil
	})
	return found
}

func TestPrintRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"imports and functions", "import a from 'b'\n\nconst x = 1;\nfunction f() {\n  return x\n}\n"},
		{"jsx", "export default () => <div className=\"a\">{x}</div>\n"},
		{"comments", "// leading\nconst a = `t ${b}` // trailing\n/* block */\n"},
		{"template", "const s = css`\n  div { color: ${c}; }\n`\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.src)
			assert.Equal(t, tt.src, string(f.Print()))
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.js", []byte("const = ;\n"))
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "bad.js", synErr.File)
	assert.Equal(t, 1, synErr.Pos.Line)
}

func TestFields(t *testing.T) {
	f := parse(t, "const Foo = css`color: red;`\n")

	decl := find(f, "variable_declarator")
	require.NotNil(t, decl)
	assert.Equal(t, "Foo", decl.Child("name").Source())

	call := decl.Child("value")
	require.NotNil(t, call)
	assert.Equal(t, "call_expression", call.Kind)
	assert.Equal(t, "css", call.Child("function").Source())
	assert.Equal(t, "template_string", call.Child("arguments").Kind)
}

func TestRemoveStatement(t *testing.T) {
	f := parse(t, "import css from 'styled-jsx/css'\nconst a = 1\n")

	imp := find(f, "import_statement")
	require.NotNil(t, imp)
	require.NoError(t, Remove(imp))

	assert.Equal(t, "const a = 1\n", string(f.Print()))
	assert.Nil(t, find(f, "import_statement"))
}

func TestInsertBeforeStatement(t *testing.T) {
	f := parse(t, "const a = 1;\nexport default b;\n")

	exp := find(f, "export_statement")
	stmt := ExprStmt(Assign(Member(Ident("x"), "y"), StringLit("z")))
	require.NoError(t, InsertBefore(exp, stmt))

	assert.Equal(t, "const a = 1;\nx.y = \"z\";\nexport default b;\n", string(f.Print()))
}

func TestInsertAfterInBlock(t *testing.T) {
	f := parse(t, "function f() {\n  const a = 1;\n}\n")

	decl := find(f, "lexical_declaration")
	require.NoError(t, InsertAfter(decl,
		ExprStmt(Assign(Member(Ident("a"), "one"), StringLit("1"))),
		ExprStmt(Assign(Member(Ident("a"), "two"), StringLit("2"))),
	))

	want := "function f() {\n  const a = 1;\n  a.one = \"1\";\n  a.two = \"2\";\n}\n"
	assert.Equal(t, want, string(f.Print()))
}

func TestInsertAfterKeepsOrder(t *testing.T) {
	f := parse(t, "const a = 1;\n")

	decl := find(f, "lexical_declaration")
	require.NoError(t, InsertAfter(decl, ExprStmt(Ident("first"))))
	require.NoError(t, InsertAfter(decl, ExprStmt(Ident("second"))))

	assert.Equal(t, "const a = 1;\nfirst;\nsecond;\n", string(f.Print()))
}

func TestReplace(t *testing.T) {
	f := parse(t, "export default css`a{}`;\n")

	call := find(f, "call_expression")
	require.NoError(t, Replace(call, Ident("_defaultExport")))
	require.NoError(t, InsertBefore(find(f, "export_statement"), ConstDecl("_defaultExport", NewExpr(Ident("String"), StringLit("a{}")))))

	want := "const _defaultExport = new String(\"a{}\");\nexport default _defaultExport;\n"
	assert.Equal(t, want, string(f.Print()))
}

func TestTemplateWithOriginalExpressions(t *testing.T) {
	f := parse(t, "const c = 'red'\nconst s = css`${c}`\n")

	sub := find(f, "template_substitution")
	require.NotNil(t, sub)
	expr := Clone(sub.FirstNamed())

	tpl := TemplateLit([]string{"div{color:", ";}"}, []*Node{expr})
	assert.Equal(t, "`div{color:${c};}`", Print(tpl))

	arr := ArrayLit(StringLit("a"), TemplateLit([]string{"b"}, nil))
	assert.Equal(t, "[\"a\", `b`]", Print(arr))
}

func TestNameGen(t *testing.T) {
	f := parse(t, "const _defaultExport = 1\nconst x = _defaultExport2\n")

	g := NewNameGen(f)
	assert.Equal(t, "_defaultExport3", g.Generate("defaultExport"))
	assert.Equal(t, "_defaultExport4", g.Generate("defaultExport"))
	assert.Equal(t, "_other", g.Generate("other"))
}

func TestIsBound(t *testing.T) {
	src := `import theme from './theme'
import { a as b } from './x'
const top = 1
var hoisted = 2
function outer(param, { deep }, [first], ...rest) {
  const inner = 3
  return () => use(top, theme, b, param, deep, first, rest, inner, hoisted, free)
}
class Box {}
`
	f := parse(t, src)

	var refs []*Node
	Walk(f.Root, func(n *Node) bool {
		if n.Kind == "arguments" && n.Parent.Child("function").Source() == "use" {
			for _, a := range n.NamedChildren() {
				refs = append(refs, a)
			}
			return false
		}
		return true
	})
	require.Len(t, refs, 10)

	for _, ref := range refs[:9] {
		assert.True(t, IsBound(ref, ref.Source()), ref.Source())
	}
	assert.False(t, IsBound(refs[9], "free"))
	assert.True(t, IsBound(refs[0], "Box"))
	assert.True(t, IsBound(refs[0], "outer"))
}

func TestBindingScope(t *testing.T) {
	f := parse(t, "const top = 1\nfunction f(param) {\n  return use(top, param)\n}\n")

	use := find(f, "arguments")
	require.NotNil(t, use)
	args := use.NamedChildren()
	require.Len(t, args, 2)

	assert.Equal(t, f.Root, BindingScope(args[0], "top"))
	fn := find(f, "function_declaration")
	assert.Equal(t, fn, BindingScope(args[1], "param"))
	assert.Nil(t, BindingScope(args[1], "free"))

	assert.True(t, fn.Encloses(args[1]))
	assert.True(t, fn.Encloses(fn))
	assert.False(t, args[0].Encloses(fn))
}

func TestImportHelpers(t *testing.T) {
	f := parse(t, "import css, { global as g } from \"styled-jsx/css\"\n")

	imp := find(f, "import_statement")
	assert.Equal(t, "styled-jsx/css", ImportSource(imp))
	assert.Equal(t, []string{"css", "g"}, ImportLocals(imp))
}

func TestPosition(t *testing.T) {
	f := parse(t, "const a = 1\nconst bee = 2\n")

	id := findIdent(f, "bee")
	require.NotNil(t, id)
	assert.Equal(t, Position{Line: 2, Column: 7}, id.Pos())
	assert.Equal(t, "const bee = 2", f.Line(2))
}
