package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnresolvedVariable is returned by custom-properties in strict mode
// when a var() reference has neither a known value nor a fallback.
var ErrUnresolvedVariable = errors.New("unresolved custom property")

// token is a lexed CSS token. Concatenating the text of every token of an
// input reproduces the input exactly.
type token struct {
	tt   css.TokenType
	text string
}

func tokenize(s string) []token {
	lexer := css.NewLexer(parse.NewInputString(s))
	var out []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		out = append(out, token{tt: tt, text: string(text)})
	}
	return out
}

func join(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
	}
	return b.String()
}

// closingParen returns the index of the token closing the group opened at
// tokens[open], or len(tokens) when the group is unterminated.
func closingParen(tokens []token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens)
}

// stripComments removes /* */ comments.
type stripComments struct{}

func newStripComments(map[string]any) (Plugin, error) { return stripComments{}, nil }

func (stripComments) Name() string { return "strip-comments" }

func (stripComments) Transform(s string, _ TransformOptions) (string, error) {
	var b strings.Builder
	for _, t := range tokenize(s) {
		if t.tt == css.CommentToken {
			continue
		}
		b.WriteString(t.text)
	}
	return b.String(), nil
}

// customProperties inlines var(--name) references whose value is known at
// build time.
type customProperties struct {
	variables map[string]string
	strict    bool
}

func newCustomProperties(options map[string]any) (Plugin, error) {
	p := &customProperties{variables: make(map[string]string)}

	if raw, ok := options["variables"]; ok {
		vars, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("option variables: expected an object, got %T", raw)
		}
		for name, value := range vars {
			if !strings.HasPrefix(name, "--") {
				name = "--" + name
			}
			p.variables[name] = fmt.Sprint(value)
		}
	}
	if raw, ok := options["strict"]; ok {
		strict, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("option strict: expected a boolean, got %T", raw)
		}
		p.strict = strict
	}

	return p, nil
}

func (p *customProperties) Name() string { return "custom-properties" }

func (p *customProperties) Transform(s string, opts TransformOptions) (string, error) {
	tokens := tokenize(s)
	var b strings.Builder

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.tt != css.FunctionToken || !strings.EqualFold(t.text, "var(") {
			b.WriteString(t.text)
			continue
		}

		end := closingParen(tokens, i)
		if end == len(tokens) {
			b.WriteString(join(tokens[i:]))
			break
		}

		repl, ok, err := p.resolve(tokens[i+1:end], opts)
		if err != nil {
			return "", err
		}
		if ok {
			b.WriteString(repl)
		} else {
			b.WriteString(join(tokens[i : end+1]))
		}
		i = end
	}

	return b.String(), nil
}

// resolve handles the arguments of one var() call.
func (p *customProperties) resolve(args []token, opts TransformOptions) (string, bool, error) {
	name := ""
	rest := args
	for i, t := range args {
		if t.tt == css.WhitespaceToken {
			continue
		}
		name = t.text
		rest = args[i+1:]
		break
	}
	if !strings.HasPrefix(name, "--") {
		return "", false, nil
	}

	if value, ok := p.variables[name]; ok {
		return value, true, nil
	}

	for i, t := range rest {
		if t.tt == css.CommaToken {
			fallback, err := p.Transform(strings.TrimSpace(join(rest[i+1:])), opts)
			if err != nil {
				return "", false, err
			}
			return fallback, true, nil
		}
	}

	if p.strict {
		return "", false, fmt.Errorf("%s:%d:%d: %s: %w",
			opts.Filename, opts.Location.Line, opts.Location.Column, name, ErrUnresolvedVariable)
	}
	return "", false, nil
}

// normalizeColors rewrites color literals in color-bearing declarations to
// lowercase hex.
type normalizeColors struct{}

func newNormalizeColors(map[string]any) (Plugin, error) { return normalizeColors{}, nil }

func (normalizeColors) Name() string { return "normalize-colors" }

var colorFunctions = map[string]bool{
	"rgb(": true, "rgba(": true, "hsl(": true, "hsla(": true, "hwb(": true,
}

var colorProperties = []string{
	"background", "border", "outline", "box-shadow", "text-shadow",
	"fill", "stroke", "column-rule", "text-decoration",
}

func isColorProperty(prop string) bool {
	prop = strings.ToLower(prop)
	if strings.HasSuffix(prop, "color") {
		return true
	}
	for _, p := range colorProperties {
		if strings.HasPrefix(prop, p) {
			return true
		}
	}
	return false
}

func (n normalizeColors) Transform(s string, _ TransformOptions) (string, error) {
	tokens := tokenize(s)
	var b strings.Builder

	// Segments end at ; { or }. Only segments ending in ; or } are
	// declarations; a segment ending in { is a selector or at-rule prelude.
	start := 0
	depth := 0
	for i, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
			continue
		case css.RightParenthesisToken:
			depth--
			continue
		case css.SemicolonToken, css.RightBraceToken:
			if depth > 0 {
				continue
			}
			b.WriteString(n.declaration(tokens[start:i]))
		case css.LeftBraceToken:
			if depth > 0 {
				continue
			}
			b.WriteString(join(tokens[start:i]))
		default:
			continue
		}
		b.WriteString(t.text)
		start = i + 1
	}
	b.WriteString(n.declaration(tokens[start:]))

	return b.String(), nil
}

func (normalizeColors) declaration(tokens []token) string {
	colon := -1
	for i, t := range tokens {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 || !isColorProperty(strings.TrimSpace(join(tokens[:colon]))) {
		return join(tokens)
	}

	var b strings.Builder
	b.WriteString(join(tokens[:colon+1]))
	for i := colon + 1; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.tt == css.IdentToken && !strings.EqualFold(t.text, "transparent"):
			b.WriteString(hexColor(t.text))
		case t.tt == css.HashToken:
			b.WriteString(hexColor(t.text))
		case t.tt == css.FunctionToken && colorFunctions[strings.ToLower(t.text)]:
			end := closingParen(tokens, i)
			if end == len(tokens) {
				b.WriteString(join(tokens[i:]))
				return b.String()
			}
			b.WriteString(hexColor(join(tokens[i : end+1])))
			i = end
		default:
			b.WriteString(t.text)
		}
	}
	return b.String()
}

// hexColor returns the hex form of a parseable color and s unchanged
// otherwise.
func hexColor(s string) string {
	if strings.Contains(s, "%%") {
		return s
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return s
	}
	return c.HexString()
}
