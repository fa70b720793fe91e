// Package styleinfo turns a css tagged template into a structural
// description: a content hash plus CSS text in which every interpolation is
// replaced by a numbered placeholder.
package styleinfo

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf16"

	"github.com/yacobolo/jsxstyle/internal/jsast"
)

// PlaceholderPattern matches the markers Extract puts where interpolations
// were. The first submatch is the expression index.
var PlaceholderPattern = regexp.MustCompile(`%%styled-jsx-placeholder-(\d+)%%`)

// StyleInfo describes one template literal.
type StyleInfo struct {
	Hash        string        // base hash, before the global/scoped suffix
	CSS         string        // raw CSS with placeholders
	Expressions []*jsast.Node // interpolated expressions, in order
	Location    jsast.Position
}

// Dynamic reports whether the template interpolates anything.
func (s StyleInfo) Dynamic() bool { return len(s.Expressions) > 0 }

// Placeholder returns the marker standing in for expression i.
func Placeholder(i int) string {
	return fmt.Sprintf("%%%%styled-jsx-placeholder-%d%%%%", i)
}

// Extract describes a template_string node. The hash covers the raw
// template source between the backticks, so identical text with
// interpolations in identical positions always hashes the same.
func Extract(tpl *jsast.Node) StyleInfo {
	src := tpl.Source()
	raw := src
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}

	info := StyleInfo{
		Hash:     HashString(raw),
		Location: tpl.Pos(),
	}

	var css []byte
	full := tpl.File().Source
	cursor := tpl.Start + 1
	for _, c := range tpl.Children {
		if c.Kind != "template_substitution" {
			continue
		}
		css = append(css, full[cursor:c.Start]...)
		css = append(css, Placeholder(len(info.Expressions))...)
		info.Expressions = append(info.Expressions, c.FirstNamed())
		cursor = c.End
	}
	css = append(css, full[cursor:tpl.End-1]...)
	info.CSS = string(css)

	return info
}

// HashString is the string-hash function used for class names: djb2 with
// xor, folded from the last UTF-16 code unit to the first, rendered in
// base 36.
func HashString(s string) string {
	units := utf16.Encode([]rune(s))
	var h uint32 = 5381
	for i := len(units) - 1; i >= 0; i-- {
		h = (h * 33) ^ uint32(units[i])
	}
	return strconv.FormatUint(uint64(h), 36)
}
