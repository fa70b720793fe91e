package transform

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/styleinfo"
)

func run(t *testing.T, src string, opts Options) (string, Stats, error) {
	t.Helper()
	f, err := jsast.Parse("styles.js", []byte(src))
	require.NoError(t, err)
	stats, err := Transform(f, opts)
	return string(f.Print()), stats, err
}

// hashes returns the global and scoped hashes of a template's raw text.
func hashes(raw string) (string, string) {
	base := styleinfo.HashString(raw)
	return base + "0", base + "1"
}

func TestTransformDefaultExport(t *testing.T) {
	src := "import css from 'styled-jsx/css'\n\nexport default () => css`color: red;`\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)

	g, s := hashes("color: red;")
	want := fmt.Sprintf("\n"+
		"const _defaultExport = new String(\"color:red;\");\n"+
		"_defaultExport.__hash = %q;\n"+
		"_defaultExport.__scoped = \".jsx-%s{color:red;}\";\n"+
		"_defaultExport.__scopedHash = %q;\n"+
		"export default () => _defaultExport\n", g, s, s)
	assert.Equal(t, want, out)

	assert.Equal(t, Stats{ImportsRemoved: 1, Templates: 1, Default: 1}, stats)
	assert.True(t, stats.Changed())
	assert.Equal(t, 1, strings.Count(out, "const _defaultExport"))
	assert.Less(t, strings.Index(out, "const _defaultExport"), strings.Index(out, "__hash"))
	assert.Less(t, strings.Index(out, "__scopedHash"), strings.Index(out, "export default"))
}

func TestTransformNamedExport(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const button = css`div { color: red; }`;\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)

	g, s := hashes("div { color: red; }")
	want := fmt.Sprintf(
		"export const button = new String(\"div{color:red;}\");\n"+
			"button.__hash = %q;\n"+
			"button.__scoped = \"div.jsx-%s{color:red;}\";\n"+
			"button.__scopedHash = %q;\n", g, s, s)
	assert.Equal(t, want, out)
	assert.Equal(t, Stats{ImportsRemoved: 1, Templates: 1, Named: 1}, stats)
}

func TestTransformModuleExports(t *testing.T) {
	src := "const css = require('x')\nimport tag from 'styled-jsx/css'\nmodule.exports = tag`p { top: 0 }`\n"
	out, _, err := run(t, src, Options{})
	require.NoError(t, err)

	g, s := hashes("p { top: 0 }")
	want := fmt.Sprintf("const css = require('x')\n"+
		"const _defaultExport = new String(\"p{top:0;}\");\n"+
		"_defaultExport.__hash = %q;\n"+
		"_defaultExport.__scoped = \"p.jsx-%s{top:0;}\";\n"+
		"_defaultExport.__scopedHash = %q;\n"+
		"module.exports = _defaultExport\n", g, s, s)
	assert.Equal(t, want, out)
}

func TestTransformMultipleMatches(t *testing.T) {
	src := "import css from 'styled-jsx/css'\n" +
		"const _defaultExport = 1\n" +
		"export const a = css`a{}`, b = css`b{}`;\n" +
		"export default css`c{}`\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{ImportsRemoved: 1, Templates: 3, Named: 2, Default: 1}, stats)

	// The generated name avoids the existing binding.
	assert.Contains(t, out, "const _defaultExport2 = new String(\"\");")
	assert.Contains(t, out, "export default _defaultExport2")

	// Named metadata follows the declaration in source order.
	ia := strings.Index(out, "a.__hash")
	ib := strings.Index(out, "b.__hash")
	decl := strings.Index(out, "export const a")
	require.True(t, decl >= 0 && ia > decl && ib > ia, out)
	assert.Contains(t, out, "export const a = new String(\"\"), b = new String(\"\");")
}

func TestTransformInterpolations(t *testing.T) {
	src := "import css from 'styled-jsx/css'\n" +
		"const color = 'red'\n" +
		"export const x = css`p { color: ${color}; width: ${Math.max(1, 2)}px; }`\n"
	out, _, err := run(t, src, Options{})
	require.NoError(t, err)

	_, s := hashes("p { color: ${color}; width: ${Math.max(1, 2)}px; }")
	assert.Contains(t, out, "export const x = new String(`p{color:${color};width:${Math.max(1, 2)}px;}`)\n")
	assert.Contains(t, out, fmt.Sprintf("x.__scoped = `p.jsx-%s{color:${color};width:${Math.max(1, 2)}px;}`;", s))
}

func TestTransformSplitRules(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`a { top: 0 } b { top: 1 }`\n"
	out, _, err := run(t, src, Options{SplitRules: true})
	require.NoError(t, err)

	_, s := hashes("a { top: 0 } b { top: 1 }")
	assert.Contains(t, out, `export const x = ["a{top:0;}", "b{top:1;}"]`)
	assert.Contains(t, out, fmt.Sprintf(`x.__scoped = ["a.jsx-%s{top:0;}", "b.jsx-%s{top:1;}"];`, s, s))
	assert.NotContains(t, out, "new String")
}

func TestTransformVendorPrefix(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`p { user-select: none }`\n"
	out, _, err := run(t, src, Options{VendorPrefix: true})
	require.NoError(t, err)
	assert.Contains(t, out, `new String("p{-webkit-user-select:none;-moz-user-select:none;-ms-user-select:none;user-select:none;}")`)
}

func TestTransformHashVariantsDiffer(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`p{}`\n"
	f, err := jsast.Parse("a.js", []byte(src))
	require.NoError(t, err)

	calls := collect(f, NewRegistry(""))
	require.Len(t, calls, 1)
	m, err := prepare(calls[0], Options{})
	require.NoError(t, err)
	assert.NotEqual(t, m.global.Hash, m.scoped.Hash)
	base := styleinfo.HashString("p{}")
	assert.Equal(t, base+"0", m.global.Hash)
	assert.Equal(t, base+"1", m.scoped.Hash)
}

func TestTransformHashesAreSuffixedBase(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`p{color:red}`\n"
	out, _, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `x.__hash = "5cwk2v0";`)
	assert.Contains(t, out, `x.__scoped = "p.jsx-5cwk2v1{color:red;}";`)
	assert.Contains(t, out, `x.__scopedHash = "5cwk2v1";`)
}

func TestTransformImportRemovedWithoutMatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"default import", "import css from 'styled-jsx/css'\nconst a = 1\n", "const a = 1\n"},
		{"named import", "import { global } from \"styled-jsx/css\";\nconst a = 1\n", "const a = 1\n"},
		{"bare import", "import 'styled-jsx/css'\nconst a = 1\n", "const a = 1\n"},
		{"other module kept", "import css from 'other/css'\nconst a = css`p{}`\n", "import css from 'other/css'\nconst a = css`p{}`\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.src, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTransformLastImportWins(t *testing.T) {
	src := "import a from 'styled-jsx/css'\nimport b from 'styled-jsx/css'\nexport const x = a`p{}`\nexport const y = b`i{top:0}`\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ImportsRemoved)
	assert.Equal(t, 1, stats.Templates)
	assert.Contains(t, out, "export const x = a`p{}`")
	assert.Contains(t, out, "export const y = new String(\"i{top:0;}\")")
	assert.NotContains(t, out, "styled-jsx/css")
}

func TestTransformCustomTagModule(t *testing.T) {
	src := "import css from 'my/css'\nimport other from 'styled-jsx/css'\nexport const x = css`p{}`\n"
	out, stats, err := run(t, src, Options{TagModule: "my/css"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Templates)
	assert.Contains(t, out, "import other from 'styled-jsx/css'")
	assert.NotContains(t, out, "my/css")
}

func TestTransformNestedMatch(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`p { color: ${css`q{}`}; }`\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{ImportsRemoved: 1, Templates: 2, Default: 1, Named: 1}, stats)

	assert.NotContains(t, out, "css`")
	assert.NotContains(t, out, "styled-jsx/css")
	assert.Contains(t, out, "export const x = new String(`p{color:${_defaultExport};}`)")
	assert.Contains(t, out, "x.__scoped = `p.jsx-")
	assert.Less(t, strings.Index(out, "const _defaultExport = new String(\"\");"), strings.Index(out, "export const x"))
}

func TestTransformNestedMatchInDefaultExport(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport default css`a { b: ${css`c{}`}; }`\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Default)

	assert.NotContains(t, out, "css`")
	// The inner template is hoisted first and named first.
	assert.Contains(t, out, "const _defaultExport2 = new String(`a{b:${_defaultExport};}`);")
	assert.Less(t, strings.Index(out, "const _defaultExport ="), strings.Index(out, "const _defaultExport2 ="))
	assert.Contains(t, out, "export default _defaultExport2")
}

func TestTransformValidationRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		ref  string
	}{
		{
			name: "free identifier",
			src:  "import css from 'styled-jsx/css'\nexport const x = css`p { color: ${nope}; }`\n",
			kind: ErrUnresolvedReference,
			ref:  "nope",
		},
		{
			name: "instance props",
			src:  "import css from 'styled-jsx/css'\nclass A { render() { return css`p { color: ${this.props.color}; }` } }\n",
			kind: ErrInstanceMemberReference,
			ref:  "this.props.color",
		},
		{
			name: "parameter out of reach of the hoisted value",
			src:  "import css from 'styled-jsx/css'\nexport default (color) => css`p { color: ${color}; }`\n",
			kind: ErrUnresolvedReference,
			ref:  "color",
		},
		{
			name: "shadowed global out of reach",
			src:  "import css from 'styled-jsx/css'\nexport default (Math) => css`p { width: ${Math.PI}px; }`\n",
			kind: ErrUnresolvedReference,
			ref:  "Math",
		},
		{
			name: "free identifier in nested function",
			src:  "import css from 'styled-jsx/css'\nexport const x = css`p { color: ${[1].map(v => v + missing)}; }`\n",
			kind: ErrUnresolvedReference,
			ref:  "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats, err := run(t, tt.src, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.ref, ve.Name)
			assert.Equal(t, "styles.js", ve.Filename)
			assert.Equal(t, 2, ve.Pos.Line)

			// Nothing was touched, the import included.
			assert.Equal(t, tt.src, out)
			assert.Equal(t, Stats{}, stats)
		})
	}
}

func TestTransformValidationAccepts(t *testing.T) {
	src := "import css from 'styled-jsx/css'\n" +
		"import { theme } from './theme'\n" +
		"const sizes = [1, 2]\n" +
		"function pad(n) { return n * 2 }\n" +
		"export const x = css`p { a: ${theme.color}; b: ${sizes.map(s => s + 1).join(' ')}; c: ${pad(2)}px; d: ${Math.PI}; e: ${JSON.stringify({ sizes })} }`\n"
	_, stats, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Templates)
}

func TestTransformParameterInScopeOfHoist(t *testing.T) {
	src := "import css from 'styled-jsx/css'\n" +
		"function styles(color) {\n" +
		"  return css`p { color: ${color}; }`\n" +
		"}\n"
	out, stats, err := run(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Default)
	assert.Contains(t, out, "  const _defaultExport = new String(`p{color:${color};}`);\n")
	assert.Contains(t, out, "  return _defaultExport\n")
}

func TestTransformUnhandledStructure(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nfunction f() { const x = css`p{}` }\n"
	out, _, err := run(t, src, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnhandledStructure)
	assert.Contains(t, err.Error(), "styles.js:2:26")
	assert.Equal(t, src, out)
}

func TestTransformPipelineErrorPropagates(t *testing.T) {
	p, err := pipeline.Combine([]pipeline.PluginConfig{{
		Name:    "custom-properties",
		Options: map[string]any{"strict": true},
	}}, pipeline.Options{})
	require.NoError(t, err)

	src := "import css from 'styled-jsx/css'\nexport const x = css`p { color: var(--nope) }`\n"
	out, _, err := run(t, src, Options{Pipeline: p})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrUnresolvedVariable))
	assert.Equal(t, src, out)
}

func TestTransformMalformedCSS(t *testing.T) {
	src := "import css from 'styled-jsx/css'\nexport const x = css`p { color: red`\n"
	out, _, err := run(t, src, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles.js:2:24: unclosed block")
	assert.Equal(t, src, out)
}

func TestResolveKinds(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   ExportKind
		export string
		anchor string
	}{
		{"exported declaration", "export const x = css`p{}`\n", NamedViaDeclaration, "x", "export_statement"},
		{"plain declaration", "let x = (css`p{}`)\n", NamedViaDeclaration, "x", "lexical_declaration"},
		{"exports assignment", "module.exports = css`p{}`\n", DefaultAnonymous, DefaultExportName, "expression_statement"},
		{"declaration inside exports assignment", "module.exports = [() => { var x = css`p{}` }]\n", NamedViaDeclaration, "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := jsast.Parse("a.js", []byte("import css from 'styled-jsx/css'\n"+tt.src))
			require.NoError(t, err)
			calls := collect(f, NewRegistry(""))
			require.Len(t, calls, 1)

			target, err := Resolve(calls[0])
			if tt.anchor == "" {
				// The declaration wins over the enclosing assignment and is
				// too deep to hoist.
				require.ErrorIs(t, err, ErrUnhandledStructure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, target.Kind)
			assert.Equal(t, tt.export, target.Name)
			assert.Equal(t, tt.anchor, target.Anchor.Kind)
		})
	}
}
