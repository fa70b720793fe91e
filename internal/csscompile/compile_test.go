package csscompile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/styleinfo"
)

func styleOf(t *testing.T, src string) styleinfo.StyleInfo {
	t.Helper()
	f, err := jsast.Parse("styles.js", []byte(src))
	require.NoError(t, err)

	var tpl *jsast.Node
	jsast.Walk(f.Root, func(n *jsast.Node) bool {
		if tpl == nil && n.Kind == "template_string" {
			tpl = n
		}
		return tpl == nil
	})
	require.NotNil(t, tpl)
	return styleinfo.Extract(tpl)
}

func compileCSS(t *testing.T, css string, opts Options) (string, string) {
	t.Helper()
	info := styleOf(t, "const s = css`"+css+"`\n")
	if opts.Hash == "" {
		opts.Hash = info.Hash + ScopedSuffix
	}
	v, err := Compile(info, opts)
	require.NoError(t, err)
	require.Equal(t, "string", v.CSS.Kind)
	return v.CSS.Value, ClassName(v.Hash)
}

func TestCompileScoped(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string // ".C" stands for the scope class
	}{
		{"element", "div { color: red; }", "div.C{color:red;}"},
		{"bare declarations", "color: red;", ".C{color:red;}"},
		{"pseudo", "a:hover, p::before { x: y }", "a.C:hover,p.C::before{x:y;}"},
		{"combinators", "div > span  em + i {top:0}", "div.C>span.C em.C+i.C{top:0;}"},
		{"global compound", ":global(.x) a { top: 0 }", ".x a.C{top:0;}"},
		{"global whole", ":global(body div) { margin: 0 }", "body div{margin:0;}"},
		{"nested", "a { color: red; &:hover { color: blue; } span { margin: 0 } }",
			"a.C{color:red;}a.C:hover{color:blue;}a.C span.C{margin:0;}"},
		{"media", "@media (max-width: 100px) { div { color: red; } }",
			"@media (max-width: 100px){div.C{color:red;}}"},
		{"keyframes", "@keyframes fade { from { opacity: 0 } 50% { opacity: .5 } to { opacity: 1 } }",
			"@keyframes fade{from{opacity:0;}50%{opacity:.5;}to{opacity:1;}}"},
		{"font-face", "@font-face { font-family: x; src: url(a.woff) }",
			"@font-face{font-family:x;src:url(a.woff);}"},
		{"import", "@import url(a.css); p { top: 0 }", "@import url(a.css);p.C{top:0;}"},
		{"comments dropped", "/* x */ p { /* y */ color: red }", "p.C{color:red;}"},
		{"empty rule dropped", "p {} i { top: 0 }", "i.C{top:0;}"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, class := compileCSS(t, tt.css, Options{})
			assert.Equal(t, replaceClass(tt.want, class), got)
		})
	}
}

func replaceClass(s, class string) string {
	out := []byte{}
	for i := 0; i < len(s); i++ {
		if s[i] == 'C' && i > 0 && s[i-1] == '.' {
			out = append(out, class...)
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func TestCompileGlobal(t *testing.T) {
	got, _ := compileCSS(t, "div { color: red; } :global(p) { top: 0 } color: blue;", Options{IsGlobal: true})
	assert.Equal(t, "div{color:red;}p{top:0;}color:blue;", got)
}

func TestCompileVendorPrefix(t *testing.T) {
	got, class := compileCSS(t, "div { user-select: none; display: flex }", Options{VendorPrefix: true})
	assert.Equal(t, "div."+class+"{"+
		"-webkit-user-select:none;-moz-user-select:none;-ms-user-select:none;user-select:none;"+
		"display:-webkit-box;display:-webkit-flex;display:-ms-flexbox;display:flex;}", got)

	got, _ = compileCSS(t, "div { user-select: none }", Options{VendorPrefix: false, IsGlobal: true})
	assert.Equal(t, "div{user-select:none;}", got)
}

func TestCompileHashVariants(t *testing.T) {
	info := styleOf(t, "const s = css`p { color: red; }`\n")

	global, err := Compile(info, Options{Hash: info.Hash + GlobalSuffix, IsGlobal: true})
	require.NoError(t, err)
	scoped, err := Compile(info, Options{Hash: info.Hash + ScopedSuffix})
	require.NoError(t, err)

	assert.NotEqual(t, global.Hash, scoped.Hash)
	assert.Equal(t, info.Hash+"0", global.Hash)
	assert.Equal(t, info.Hash+"1", scoped.Hash)
	assert.Equal(t, "jsx-"+info.Hash+"1", ClassName(scoped.Hash))
}

func TestCompileSplitRules(t *testing.T) {
	info := styleOf(t, "const s = css`a { color: red } b { color: blue }`\n")
	v, err := Compile(info, Options{Hash: info.Hash + GlobalSuffix, IsGlobal: true, SplitRules: true})
	require.NoError(t, err)

	require.Equal(t, "array", v.CSS.Kind)
	require.Len(t, v.CSS.Children, 2)
	assert.Equal(t, "a{color:red;}", v.CSS.Children[0].Value)
	assert.Equal(t, "b{color:blue;}", v.CSS.Children[1].Value)
	assert.Equal(t, `["a{color:red;}", "b{color:blue;}"]`, jsast.Print(v.CSS))
}

func TestCompileRestoresExpressions(t *testing.T) {
	info := styleOf(t, "const c = 'red'\nconst s = css`div { color: ${c}; margin: ${c.length * 2}px; }`\n")
	v, err := Compile(info, Options{Hash: info.Hash + GlobalSuffix, IsGlobal: true})
	require.NoError(t, err)

	require.Equal(t, "template_string", v.CSS.Kind)
	assert.Equal(t, "`div{color:${c};margin:${c.length * 2}px;}`", jsast.Print(v.CSS))
}

func TestCompileSplitRulesWithExpressions(t *testing.T) {
	info := styleOf(t, "const c = 1\nconst s = css`a { top: ${c}px } b { top: 0 }`\n")
	v, err := Compile(info, Options{Hash: info.Hash + GlobalSuffix, IsGlobal: true, SplitRules: true})
	require.NoError(t, err)

	require.Len(t, v.CSS.Children, 2)
	assert.Equal(t, "template_string", v.CSS.Children[0].Kind)
	assert.Equal(t, "string", v.CSS.Children[1].Kind)
}

func TestCompileSyntaxError(t *testing.T) {
	info := styleOf(t, "const s = css`\n  div { color: red;\n`\n")
	_, err := Compile(info, Options{Hash: info.Hash + ScopedSuffix, File: FileInfo{Name: "styles.js"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCSS)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "styles.js", se.Filename)
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 7, se.Column)
	assert.Contains(t, err.Error(), "unclosed block")
}

func TestCompileUnexpectedBrace(t *testing.T) {
	info := styleOf(t, "const s = css`div { } }`\n")
	_, err := Compile(info, Options{Hash: info.Hash + ScopedSuffix})
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 23, se.Column)
}

type rejecting struct{ err error }

func (rejecting) Name() string { return "rejecting" }
func (r rejecting) Transform(string, pipeline.TransformOptions) (string, error) {
	return "", r.err
}

func TestCompilePipelineErrorUnchanged(t *testing.T) {
	boom := errors.New("boom")
	r := pipeline.NewRegistry()
	r.Register("rejecting", func(map[string]any) (pipeline.Plugin, error) { return rejecting{err: boom}, nil })
	p, err := r.Combine([]pipeline.PluginConfig{{Name: "rejecting"}}, pipeline.Options{})
	require.NoError(t, err)

	info := styleOf(t, "const s = css`div {}`\n")
	_, err = Compile(info, Options{Hash: info.Hash + ScopedSuffix, Pipeline: p})
	assert.Same(t, boom, err)
}

func TestCompileRunsPipeline(t *testing.T) {
	p, err := pipeline.Combine([]pipeline.PluginConfig{{Name: "normalize-colors"}}, pipeline.Options{})
	require.NoError(t, err)

	info := styleOf(t, "const s = css`div { color: RED }`\n")
	v, err := Compile(info, Options{Hash: info.Hash + GlobalSuffix, IsGlobal: true, Pipeline: p})
	require.NoError(t, err)
	assert.Equal(t, "div{color:#ff0000;}", v.CSS.Value)
}
