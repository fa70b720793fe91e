package transform

import (
	"errors"
	"fmt"

	"github.com/yacobolo/jsxstyle/internal/jsast"
)

// ErrUnhandledStructure is returned when a call site is not in a position
// the rewriter knows how to hoist around.
var ErrUnhandledStructure = errors.New("unhandled structure")

// DefaultExportName is the export name of call sites not bound to a name.
const DefaultExportName = "default"

// ExportKind classifies how a call site's value is exported.
type ExportKind int

const (
	// DefaultAnonymous is any call site not directly initializing a
	// variable: export default, module.exports = ..., arguments, returns.
	DefaultAnonymous ExportKind = iota
	// NamedViaDeclaration is `const Name = css`...`` anchored at the
	// declaration statement.
	NamedViaDeclaration
	// NamedViaExportsAssignment is a named binding whose nearest anchor is
	// a `module.exports = ...` assignment. A declarator always sits in a
	// declaration, which is found first, so Resolve never returns this
	// kind; it completes the anchor predicate.
	NamedViaExportsAssignment
)

func (k ExportKind) String() string {
	switch k {
	case DefaultAnonymous:
		return "default"
	case NamedViaDeclaration:
		return "named-declaration"
	case NamedViaExportsAssignment:
		return "named-exports-assignment"
	}
	return fmt.Sprintf("ExportKind(%d)", int(k))
}

// ExportTarget says where a call site's metadata goes.
type ExportTarget struct {
	Kind   ExportKind
	Name   string      // binding name, or DefaultExportName
	Call   *jsast.Node // the tagged template call
	Anchor *jsast.Node // statement to insert next to; always in a statement list
}

// Named reports whether the target is bound to a name.
func (t ExportTarget) Named() bool { return t.Kind != DefaultAnonymous }

// Resolve classifies a tagged template call and finds its anchor statement.
//
// A call whose parent (ignoring parentheses) is a variable declarator is
// named after the declared identifier and anchored at the nearest
// declaration or module.exports assignment, promoted one level when that
// is not at the top of the program. Anything else is a default export
// anchored at the statement containing the call.
func Resolve(call *jsast.Node) (ExportTarget, error) {
	parent := call.Parent
	for parent != nil && parent.Kind == "parenthesized_expression" {
		parent = parent.Parent
	}
	if parent == nil {
		return ExportTarget{}, fmt.Errorf("call has no parent: %w", ErrUnhandledStructure)
	}

	if parent.Kind == "variable_declarator" {
		id := parent.Child("name")
		if id == nil || id.Kind != "identifier" {
			return ExportTarget{}, fmt.Errorf("css template assigned to a destructuring pattern: %w", ErrUnhandledStructure)
		}
		return resolveNamed(call, id.Source())
	}

	anchor := parent
	for anchor.Parent != nil && !isStatementList(anchor.Parent) {
		anchor = anchor.Parent
	}
	if anchor.Parent == nil {
		return ExportTarget{}, fmt.Errorf("no statement encloses the css template: %w", ErrUnhandledStructure)
	}

	return ExportTarget{
		Kind:   DefaultAnonymous,
		Name:   DefaultExportName,
		Call:   call,
		Anchor: anchor,
	}, nil
}

func resolveNamed(call *jsast.Node, name string) (ExportTarget, error) {
	anchor := call.FindParent(func(n *jsast.Node) bool {
		switch n.Kind {
		case "lexical_declaration", "variable_declaration":
			return true
		case "assignment_expression":
			return isModuleExports(n.Child("left"))
		}
		return false
	})
	if anchor == nil {
		return ExportTarget{}, fmt.Errorf("no declaration found for %q: %w", name, ErrUnhandledStructure)
	}

	kind := NamedViaDeclaration
	if anchor.Kind == "assignment_expression" {
		kind = NamedViaExportsAssignment
	}

	if anchor.Parent != nil && anchor.Parent.Kind != "program" {
		anchor = anchor.Parent
	}
	if anchor.Parent == nil || !isStatementList(anchor.Parent) {
		return ExportTarget{}, fmt.Errorf("declaration of %q is nested too deeply to hoist: %w", name, ErrUnhandledStructure)
	}

	return ExportTarget{Kind: kind, Name: name, Call: call, Anchor: anchor}, nil
}

func isStatementList(n *jsast.Node) bool {
	switch n.Kind {
	case "program", "statement_block", "switch_case", "switch_default", "class_static_block":
		return true
	}
	return false
}

// isModuleExports matches the member expression `module.exports`.
func isModuleExports(n *jsast.Node) bool {
	if n == nil || n.Kind != "member_expression" {
		return false
	}
	obj, prop := n.Child("object"), n.Child("property")
	return obj != nil && prop != nil &&
		obj.Kind == "identifier" && obj.Source() == "module" &&
		prop.Source() == "exports"
}
