// Package transform rewrites css tagged templates imported from the
// styled-jsx/css module into plain values carrying compiled global and
// scoped styles.
//
// A file is processed in three steps. A read-only walk records tag imports
// and collects matching call sites in source order. Every match is then
// validated, extracted, compiled and resolved without touching the tree,
// so a failure leaves the file as it was. Finally the tag imports are
// deleted and the matches rewritten.
package transform

import (
	"fmt"

	"github.com/yacobolo/jsxstyle/internal/csscompile"
	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/styleinfo"
)

// Options configure a pass over one file.
type Options struct {
	TagModule    string // defaults to DefaultTagModule
	Pipeline     *pipeline.Pipeline
	VendorPrefix bool
	SplitRules   bool
	File         csscompile.FileInfo
}

// Stats summarizes what a pass changed.
type Stats struct {
	ImportsRemoved int
	Templates      int
	Default        int
	Named          int
}

// Changed reports whether the tree was modified.
func (s Stats) Changed() bool { return s.ImportsRemoved > 0 || s.Templates > 0 }

type match struct {
	call   *jsast.Node
	target ExportTarget
	global csscompile.Variant
	scoped csscompile.Variant
	outer  bool // other matches sit inside its template
}

// innermostFirst reorders matches collected in source order so every
// match comes after the matches nested inside it. Unrelated matches keep
// their source order.
func innermostFirst(matches []match) []match {
	out := make([]match, 0, len(matches))
	var visit func(i int) int
	visit = func(i int) int {
		next := i + 1
		for next < len(matches) && matches[i].call.Encloses(matches[next].call) {
			matches[i].outer = true
			next = visit(next)
		}
		out = append(out, matches[i])
		return next
	}
	for i := 0; i < len(matches); {
		i = visit(i)
	}
	return out
}

// Transform rewrites file in place.
func Transform(file *jsast.File, opts Options) (Stats, error) {
	if opts.File.Name == "" {
		opts.File.Name = file.Name
	}

	registry := NewRegistry(opts.TagModule)
	calls := collect(file, registry)

	matches := make([]match, 0, len(calls))
	for _, call := range calls {
		m, err := prepare(call, opts)
		if err != nil {
			return Stats{}, err
		}
		matches = append(matches, m)
	}

	var stats Stats
	for _, imp := range registry.Imports() {
		if err := jsast.Remove(imp); err != nil {
			return stats, fmt.Errorf("remove import: %w", err)
		}
		stats.ImportsRemoved++
	}

	names := jsast.NewNameGen(file)
	for _, m := range innermostFirst(matches) {
		if m.outer {
			// Interpolations changed under the nested rewrites.
			var err error
			if m.global, m.scoped, err = compileVariants(m.call, opts); err != nil {
				return stats, fmt.Errorf("%s: %w", location(file, m.call), err)
			}
		}
		if err := Rewrite(m.target, m.global, m.scoped, names); err != nil {
			return stats, fmt.Errorf("%s: rewrite: %w", location(file, m.call), err)
		}
		stats.Templates++
		if m.target.Named() {
			stats.Named++
		} else {
			stats.Default++
		}
	}

	return stats, nil
}

// collect walks the tree in source order. Imports update the registry as
// they are met, so a call site is matched against the binding in effect at
// that point. A match nested in another one's interpolation follows it.
func collect(file *jsast.File, registry *Registry) []*jsast.Node {
	var calls []*jsast.Node
	jsast.Walk(file.Root, func(n *jsast.Node) bool {
		switch n.Kind {
		case "import_statement":
			registry.RecordImport(n)
			return false
		case "call_expression":
			if b, ok := registry.Active(); ok && isTagCall(n, b.LocalName) {
				calls = append(calls, n)
			}
		}
		return true
	})
	return calls
}

func isTagCall(n *jsast.Node, tag string) bool {
	fn, args := n.Child("function"), n.Child("arguments")
	return fn != nil && args != nil &&
		fn.Kind == "identifier" && fn.Source() == tag &&
		args.Kind == "template_string"
}

func prepare(call *jsast.Node, opts Options) (match, error) {
	target, err := Resolve(call)
	if err != nil {
		return match{}, fmt.Errorf("%s: %w", location(call.File(), call), err)
	}

	if err := Validate(call.Child("arguments"), target.Anchor.Parent); err != nil {
		return match{}, err
	}

	global, scoped, err := compileVariants(call, opts)
	if err != nil {
		return match{}, err
	}

	return match{call: call, target: target, global: global, scoped: scoped}, nil
}

// compileVariants compiles the global and scoped forms of a call's
// template.
func compileVariants(call *jsast.Node, opts Options) (global, scoped csscompile.Variant, err error) {
	info := styleinfo.Extract(call.Child("arguments"))
	compile := func(suffix string, isGlobal bool) (csscompile.Variant, error) {
		return csscompile.Compile(info, csscompile.Options{
			Hash:         info.Hash + suffix,
			IsGlobal:     isGlobal,
			File:         opts.File,
			Pipeline:     opts.Pipeline,
			SplitRules:   opts.SplitRules,
			VendorPrefix: opts.VendorPrefix,
		})
	}

	if global, err = compile(csscompile.GlobalSuffix, true); err != nil {
		return global, scoped, err
	}
	scoped, err = compile(csscompile.ScopedSuffix, false)
	return global, scoped, err
}

func location(f *jsast.File, n *jsast.Node) string {
	pos := n.Pos()
	name := ""
	if f != nil {
		name = f.Name
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Column)
}
