package csscompile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrMalformedCSS is wrapped by every SyntaxError.
var ErrMalformedCSS = errors.New("malformed css")

// SyntaxError reports unbalanced blocks and similar structural problems.
// Line and Column are 1-based positions in the source file when the
// compiler knows where the template starts, else within the CSS text.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedCSS }

// item is a node of the rule tree.
type item interface{ isItem() }

type declaration struct {
	Property string
	Value    string
}

type ruleSet struct {
	Selectors []string
	Body      []item
}

type atRule struct {
	Name    string // lowercased, without '@'
	Prelude string
	Block   bool
	Body    []item
}

// raw is a statement that is neither a declaration nor an at-rule, such as
// an interpolated mixin.
type raw struct {
	Text string
}

func (declaration) isItem() {}
func (ruleSet) isItem()     {}
func (atRule) isItem()      {}
func (raw) isItem()         {}

type token struct {
	tt     css.TokenType
	text   string
	offset int
}

func lex(s string) []token {
	lexer := css.NewLexer(parse.NewInputString(s))
	var out []token
	offset := 0
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		out = append(out, token{tt: tt, text: string(text), offset: offset})
		offset += len(text)
	}
	return out
}

// parserState walks the token stream building the rule tree.
type parserState struct {
	src    string
	tokens []token
	pos    int
}

// parseSheet builds the rule tree of a style block.
func parseSheet(src string) ([]item, error) {
	s := &parserState{src: src, tokens: lex(src)}
	return s.block(nil)
}

// block reads items until the brace closing open, or until EOF when open
// is nil.
func (s *parserState) block(open *token) ([]item, error) {
	var items []item
	var seg []token
	depth := 0

	for s.pos < len(s.tokens) {
		t := s.tokens[s.pos]
		s.pos++

		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				items = appendStatement(items, seg)
				seg = nil
				continue
			}
		case css.LeftBraceToken:
			if depth == 0 {
				it, err := s.nested(seg, t)
				if err != nil {
					return nil, err
				}
				items = append(items, it)
				seg = nil
				continue
			}
		case css.RightBraceToken:
			if depth == 0 {
				if open == nil {
					return nil, s.errorAt(t, "unexpected '}'")
				}
				return appendStatement(items, seg), nil
			}
		}
		seg = append(seg, t)
	}

	if open != nil {
		return nil, s.errorAt(*open, "unclosed block")
	}
	return appendStatement(items, seg), nil
}

// nested handles a prelude followed by '{'.
func (s *parserState) nested(prelude []token, open token) (item, error) {
	prelude = trimTokens(prelude)
	if len(prelude) == 0 {
		return nil, s.errorAt(open, "block without selector")
	}

	body, err := s.block(&open)
	if err != nil {
		return nil, err
	}

	if prelude[0].tt == css.AtKeywordToken {
		return atRule{
			Name:    strings.ToLower(strings.TrimPrefix(prelude[0].text, "@")),
			Prelude: normalize(prelude[1:]),
			Block:   true,
			Body:    body,
		}, nil
	}

	return ruleSet{Selectors: splitSelectors(prelude), Body: body}, nil
}

func appendStatement(items []item, seg []token) []item {
	seg = trimTokens(seg)
	if len(seg) == 0 {
		return items
	}

	if seg[0].tt == css.AtKeywordToken {
		return append(items, atRule{
			Name:    strings.ToLower(strings.TrimPrefix(seg[0].text, "@")),
			Prelude: normalize(seg[1:]),
		})
	}

	depth := 0
	for i, t := range seg {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.ColonToken:
			if depth == 0 {
				return append(items, declaration{
					Property: normalize(seg[:i]),
					Value:    normalize(seg[i+1:]),
				})
			}
		}
	}

	return append(items, raw{Text: normalize(seg)})
}

// splitSelectors splits a selector list at top-level commas.
func splitSelectors(tokens []token) []string {
	var out []string
	depth := 0
	start := 0
	for i, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				if sel := normalize(tokens[start:i]); sel != "" {
					out = append(out, sel)
				}
				start = i + 1
			}
		}
	}
	if sel := normalize(tokens[start:]); sel != "" {
		out = append(out, sel)
	}
	return out
}

// trimTokens drops leading and trailing whitespace and comments.
func trimTokens(tokens []token) []token {
	insignificant := func(t token) bool {
		return t.tt == css.WhitespaceToken || t.tt == css.CommentToken
	}
	for len(tokens) > 0 && insignificant(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && insignificant(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// normalize joins tokens, dropping comments and collapsing whitespace runs
// into one space.
func normalize(tokens []token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		switch t.tt {
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteString(t.text)
	}
	return b.String()
}

func (s *parserState) errorAt(t token, msg string) *SyntaxError {
	line, col := 1, 1
	for _, r := range s.src[:t.offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &SyntaxError{Line: line, Column: col, Msg: msg}
}
