package transform

import (
	"github.com/yacobolo/jsxstyle/internal/csscompile"
	"github.com/yacobolo/jsxstyle/internal/jsast"
)

// Metadata property names, in the order they are assigned.
const (
	HashKey       = "__hash"
	ScopedKey     = "__scoped"
	ScopedHashKey = "__scopedHash"
)

// Rewrite replaces the call site of target with the compiled global CSS
// and attaches the hash and scoped metadata to the exported value.
//
// Default exports get a fresh `const` declared before the anchor followed
// by the metadata assignments, and the call becomes a reference to that
// constant. Named exports keep their declaration, which now initializes to
// the base value, and get the assignments right after the anchor.
func Rewrite(target ExportTarget, global, scoped csscompile.Variant, names *jsast.NameGen) error {
	base := baseValue(global.CSS)

	if !target.Named() {
		id := names.Generate("defaultExport")
		stmts := append([]*jsast.Node{jsast.ConstDecl(id, base)}, metadata(id, global, scoped)...)
		if err := jsast.InsertBefore(target.Anchor, stmts...); err != nil {
			return err
		}
		return jsast.Replace(target.Call, jsast.Ident(id))
	}

	if err := jsast.InsertAfter(target.Anchor, metadata(target.Name, global, scoped)...); err != nil {
		return err
	}
	return jsast.Replace(target.Call, base)
}

// baseValue makes the exported value reference-typed so properties can be
// attached to it: arrays are used as they are, anything else is wrapped
// in `new String(...)`.
func baseValue(css *jsast.Node) *jsast.Node {
	if css.Kind == "array" {
		return css
	}
	return jsast.NewExpr(jsast.Ident("String"), css)
}

func metadata(name string, global, scoped csscompile.Variant) []*jsast.Node {
	assign := func(key string, value *jsast.Node) *jsast.Node {
		return jsast.ExprStmt(jsast.Assign(jsast.Member(jsast.Ident(name), key), value))
	}
	return []*jsast.Node{
		assign(HashKey, jsast.StringLit(global.Hash)),
		assign(ScopedKey, scoped.CSS),
		assign(ScopedHashKey, jsast.StringLit(scoped.Hash)),
	}
}
