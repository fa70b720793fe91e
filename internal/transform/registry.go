package transform

import "github.com/yacobolo/jsxstyle/internal/jsast"

// DefaultTagModule is the module whose import introduces the css tag.
const DefaultTagModule = "styled-jsx/css"

// TagBinding is the local identifier that denotes the css tag in a file.
type TagBinding struct {
	LocalName string
	Import    *jsast.Node
}

// Registry tracks the active tag binding of one file and the imports that
// have to be deleted from it.
type Registry struct {
	module  string
	active  *TagBinding
	imports []*jsast.Node
}

// NewRegistry returns a registry matching imports of module. An empty
// module means DefaultTagModule.
func NewRegistry(module string) *Registry {
	if module == "" {
		module = DefaultTagModule
	}
	return &Registry{module: module}
}

// RecordImport inspects an import statement. An import of the tag module
// is scheduled for deletion and its first local name becomes the active
// binding, replacing any earlier one. Other imports are ignored.
func (r *Registry) RecordImport(n *jsast.Node) (TagBinding, bool) {
	if n.Kind != "import_statement" || jsast.ImportSource(n) != r.module {
		return TagBinding{}, false
	}
	r.imports = append(r.imports, n)

	locals := jsast.ImportLocals(n)
	if len(locals) == 0 {
		// A bare `import 'styled-jsx/css'` binds nothing.
		return TagBinding{}, false
	}

	b := TagBinding{LocalName: locals[0], Import: n}
	r.active = &b
	return b, true
}

// Active returns the binding in effect.
func (r *Registry) Active() (TagBinding, bool) {
	if r.active == nil {
		return TagBinding{}, false
	}
	return *r.active, true
}

// Imports returns the tag module imports seen so far, in source order.
func (r *Registry) Imports() []*jsast.Node { return r.imports }
