package csscompile

import "strings"

// emitter serializes a rule tree into compact top-level rules.
type emitter struct {
	class  string // scope class without the dot, empty for global output
	prefix bool
}

var groupingRules = map[string]bool{
	"media": true, "supports": true, "container": true, "layer": true,
	"document": true, "-moz-document": true, "scope": true, "starting-style": true,
}

func isKeyframes(name string) bool {
	return name == "keyframes" || strings.HasSuffix(name, "-keyframes")
}

// items returns one string per top-level rule produced by items nested
// under parents. Declarations with no parent selector are wrapped in the
// scope class, or left bare when global.
func (e *emitter) items(parents []string, items []item) []string {
	var out []string
	var decls strings.Builder

	flush := func() {
		if decls.Len() == 0 {
			return
		}
		switch {
		case len(parents) > 0:
			out = append(out, e.selectorList(parents)+"{"+decls.String()+"}")
		case e.class != "":
			out = append(out, "."+e.class+"{"+decls.String()+"}")
		default:
			out = append(out, decls.String())
		}
		decls.Reset()
	}

	for _, it := range items {
		switch it := it.(type) {
		case declaration:
			e.declaration(&decls, it)
		case raw:
			decls.WriteString(it.Text + ";")
		case ruleSet:
			flush()
			out = append(out, e.items(nestSelectors(parents, it.Selectors), it.Body)...)
		case atRule:
			flush()
			if s := e.atRule(parents, it); s != "" {
				out = append(out, s)
			}
		}
	}
	flush()

	return out
}

func (e *emitter) selectorList(selectors []string) string {
	scoped := make([]string, len(selectors))
	for i, sel := range selectors {
		scoped[i] = scopeSelector(sel, e.class)
	}
	return strings.Join(scoped, ",")
}

func (e *emitter) declaration(b *strings.Builder, d declaration) {
	if e.prefix {
		for _, p := range prefixed(d) {
			b.WriteString(p.Property + ":" + p.Value + ";")
		}
	}
	b.WriteString(d.Property + ":" + d.Value + ";")
}

func (e *emitter) atRule(parents []string, a atRule) string {
	head := "@" + a.Name
	if a.Prelude != "" {
		head += " " + a.Prelude
	}
	if !a.Block {
		return head + ";"
	}

	var body string
	switch {
	case isKeyframes(a.Name):
		// Keyframe selectors are offsets, never scoped.
		frames := &emitter{prefix: e.prefix}
		body = strings.Join(frames.items(nil, a.Body), "")
	case groupingRules[a.Name]:
		inner := e.items(parents, a.Body)
		if len(inner) == 0 {
			return ""
		}
		body = strings.Join(inner, "")
	default:
		// @font-face, @page and friends hold plain declarations.
		plain := &emitter{prefix: e.prefix}
		body = strings.Join(plain.items(nil, a.Body), "")
	}
	return head + "{" + body + "}"
}
