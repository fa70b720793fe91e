package transform

import (
	"errors"
	"fmt"

	"github.com/yacobolo/jsxstyle/internal/jsast"
)

// Validation failures. Use errors.Is against a *ValidationError.
var (
	ErrUnresolvedReference     = errors.New("unresolved reference")
	ErrInstanceMemberReference = errors.New("instance member reference")
)

// ValidationError points at the offending expression inside a template.
type ValidationError struct {
	Kind     error
	Name     string
	Filename string
	Pos      jsast.Position
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Kind {
	case ErrInstanceMemberReference:
		msg = fmt.Sprintf("styles cannot reference instance members (%s): interpolations must be constants known at build time", e.Name)
	default:
		msg = fmt.Sprintf("%s %q: interpolations must only reference values declared in the module", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Pos.Line, e.Pos.Column, msg)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Validate checks that every interpolation of a template literal only
// reads values resolvable at build time: names declared in an enclosing
// scope or well-known globals, and never `this`.
//
// hoist is the statement list the compiled payload is moved into. A name
// bound outside the interpolation must also be visible from there. A nil
// hoist skips that check.
func Validate(tpl, hoist *jsast.Node) error {
	var err error
	for _, sub := range tpl.Children {
		if sub.Kind != "template_substitution" {
			continue
		}
		jsast.Walk(sub, func(n *jsast.Node) bool {
			if err != nil {
				return false
			}
			switch n.Kind {
			case "this":
				err = validationError(ErrInstanceMemberReference, instanceRef(n), n)
				return false
			case "identifier", "shorthand_property_identifier":
				name := n.Source()
				if !reachable(n, name, sub, hoist) {
					err = validationError(ErrUnresolvedReference, name, n)
					return false
				}
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// reachable reports whether ref still resolves once the payload holding sub
// is moved into hoist.
func reachable(ref *jsast.Node, name string, sub, hoist *jsast.Node) bool {
	scope := jsast.BindingScope(ref, name)
	switch {
	case scope == nil:
		return knownGlobals[name]
	case hoist == nil, sub.Encloses(scope):
		return true
	}
	return scope.Encloses(hoist)
}

// instanceRef renders the member chain rooted at a `this` node, such as
// this.props.color.
func instanceRef(this *jsast.Node) string {
	ref := this
	for ref.Parent != nil && ref.Parent.Kind == "member_expression" && ref.Parent.Child("object") == ref {
		ref = ref.Parent
	}
	return ref.Source()
}

func validationError(kind error, name string, n *jsast.Node) *ValidationError {
	e := &ValidationError{Kind: kind, Name: name, Pos: n.Pos()}
	if f := n.File(); f != nil {
		e.Filename = f.Name
	}
	return e
}
