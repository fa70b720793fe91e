// Package csscompile turns the CSS of a style block into the payload the
// rewriter attaches to an export: a hash plus a string, template literal or
// array expression holding the compiled rules.
package csscompile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/styleinfo"
)

// Suffixes appended to the base hash of the two compiled variants.
const (
	GlobalSuffix = "0"
	ScopedSuffix = "1"
)

// FileInfo describes the file a style block came from.
type FileInfo struct {
	Name       string
	SourceMaps bool
}

// Options control one compilation.
type Options struct {
	Hash         string // base hash plus the variant suffix
	IsGlobal     bool
	File         FileInfo
	Pipeline     *pipeline.Pipeline
	SplitRules   bool
	VendorPrefix bool
}

// Variant is one compiled form of a style block.
type Variant struct {
	Hash string
	CSS  *jsast.Node // string, template_string or array
}

// ClassName is the scoping class for a variant hash.
func ClassName(hash string) string { return "jsx-" + hash }

// Compile runs the pipeline over info.CSS, scopes and prefixes the result
// and rebuilds interpolations. Errors returned by pipeline plugins are
// passed through untouched.
func Compile(info styleinfo.StyleInfo, opts Options) (Variant, error) {
	text := info.CSS
	if opts.Pipeline != nil {
		out, err := opts.Pipeline.Apply(text, pipeline.TransformOptions{
			Location:     info.Location,
			VendorPrefix: opts.VendorPrefix,
			SourceMaps:   opts.File.SourceMaps && !opts.SplitRules,
			IsGlobal:     opts.IsGlobal,
			Filename:     opts.File.Name,
		})
		if err != nil {
			return Variant{}, err
		}
		text = out
	}

	sheet, err := parseSheet(text)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			locate(se, info.Location, opts.File.Name)
		}
		return Variant{}, err
	}

	e := &emitter{prefix: opts.VendorPrefix}
	if !opts.IsGlobal {
		e.class = ClassName(opts.Hash)
	}
	rules := e.items(nil, sheet)

	var node *jsast.Node
	if opts.SplitRules {
		elems := make([]*jsast.Node, 0, len(rules))
		for _, rule := range rules {
			n, err := restore(rule, info.Expressions)
			if err != nil {
				return Variant{}, err
			}
			elems = append(elems, n)
		}
		node = jsast.ArrayLit(elems...)
	} else {
		node, err = restore(strings.Join(rules, ""), info.Expressions)
		if err != nil {
			return Variant{}, err
		}
	}

	return Variant{Hash: opts.Hash, CSS: node}, nil
}

// locate moves a position inside the CSS text to the file, given the
// position of the opening backtick.
func locate(se *SyntaxError, tpl jsast.Position, filename string) {
	se.Filename = filename
	if tpl.Line == 0 {
		return
	}
	if se.Line == 1 {
		se.Column += tpl.Column
	}
	se.Line += tpl.Line - 1
}

// restore turns placeholders back into the interpolated expressions. Text
// without placeholders becomes a plain string literal.
func restore(css string, exprs []*jsast.Node) (*jsast.Node, error) {
	locs := styleinfo.PlaceholderPattern.FindAllStringSubmatchIndex(css, -1)
	if len(locs) == 0 {
		return jsast.StringLit(css), nil
	}

	quasis := make([]string, 0, len(locs)+1)
	subs := make([]*jsast.Node, 0, len(locs))
	last := 0
	for _, loc := range locs {
		idx, err := strconv.Atoi(css[loc[2]:loc[3]])
		if err != nil || idx >= len(exprs) {
			return nil, fmt.Errorf("placeholder %s has no expression", css[loc[0]:loc[1]])
		}
		quasis = append(quasis, css[last:loc[0]])
		subs = append(subs, jsast.Clone(exprs[idx]))
		last = loc[1]
	}
	quasis = append(quasis, css[last:])

	return jsast.TemplateLit(quasis, subs), nil
}
