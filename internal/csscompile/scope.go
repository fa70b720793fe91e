package csscompile

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// scopeSelector adds class to every compound selector of sel. Compounds
// wrapped in :global() are unwrapped and left alone. An empty class only
// unwraps :global() and tidies combinators.
func scopeSelector(sel, class string) string {
	tokens := lex(sel)

	var out strings.Builder
	var compound []token
	depth := 0
	space := false
	afterCombinator := false

	flush := func() {
		if len(compound) > 0 {
			out.WriteString(scopeCompound(compound, class))
			compound = nil
		}
	}

	for _, t := range tokens {
		if depth == 0 {
			switch {
			case t.tt == css.WhitespaceToken || t.tt == css.CommentToken:
				flush()
				space = true
				continue
			case t.tt == css.DelimToken && (t.text == ">" || t.text == "+" || t.text == "~"):
				flush()
				out.WriteString(t.text)
				space = false
				afterCombinator = true
				continue
			}
		}

		if space && !afterCombinator && out.Len() > 0 && len(compound) == 0 {
			out.WriteByte(' ')
		}
		space = false
		afterCombinator = false

		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		}
		compound = append(compound, t)
	}
	flush()

	return out.String()
}

func scopeCompound(tokens []token, class string) string {
	// :global(...) anywhere in the compound opts the compound out.
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].tt != css.ColonToken || tokens[i+1].tt != css.FunctionToken ||
			!strings.EqualFold(tokens[i+1].text, "global(") {
			continue
		}
		end := matching(tokens, i+1)
		inner := ""
		if end > i+2 {
			inner = strings.TrimSpace(joinTokens(tokens[i+2 : end]))
		}
		rest := ""
		if end+1 < len(tokens) {
			rest = joinTokens(tokens[end+1:])
		}
		return joinTokens(tokens[:i]) + inner + rest
	}

	if class == "" {
		return joinTokens(tokens)
	}

	depth := 0
	for i, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.ColonToken:
			if depth == 0 {
				return joinTokens(tokens[:i]) + "." + class + joinTokens(tokens[i:])
			}
		}
	}
	return joinTokens(tokens) + "." + class
}

// matching returns the index of the token closing the group opened at
// tokens[open], or the last index when unterminated.
func matching(tokens []token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}

func joinTokens(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
	}
	return b.String()
}

// nestSelectors resolves child selectors against their parents. '&' stands
// for the parent; a child without '&' becomes a descendant.
func nestSelectors(parents, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	out := make([]string, 0, len(parents)*len(children))
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}
