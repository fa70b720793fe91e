package jsast

import (
	"strconv"
	"strings"
)

// NameGen hands out identifiers that collide with nothing in a file.
type NameGen struct {
	used map[string]bool
}

// NewNameGen records every identifier-like token already present in f.
func NewNameGen(f *File) *NameGen {
	g := &NameGen{used: make(map[string]bool)}
	Walk(f.Root, func(n *Node) bool {
		if len(n.Children) == 0 && isIdentifierKind(n.Kind) {
			g.used[n.Source()] = true
		}
		return true
	})
	return g
}

// Generate returns "_hint", then "_hint2", "_hint3", ... skipping names in use.
func (g *NameGen) Generate(hint string) string {
	base := "_" + strings.TrimLeft(hint, "_")
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name += strconv.Itoa(i)
		}
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
}

func isIdentifierKind(kind string) bool {
	switch kind {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier",
		"statement_identifier":
		return true
	}
	return false
}
