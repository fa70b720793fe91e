// Package jsxstyle compiles styles declared with the styled-jsx/css tag
// into plain JavaScript values at build time.
//
// # External styles
//
// A module importing the tag can declare styles outside of a component:
//
//	import css from 'styled-jsx/css'
//
//	export const button = css`button { color: ${theme.primary}; }`
//	export default css`div { margin: 0; }`
//
// Each tagged template is compiled twice, once as global CSS and once
// scoped to a generated class, and replaced by a reference-typed value that
// carries both:
//
//	export const button = new String(`button{color:${theme.primary};}`);
//	button.__hash = "1f3k2x";
//	button.__scoped = `button.jsx-9a8b7c{color:${theme.primary};}`;
//	button.__scopedHash = "9a8b7c";
//
// Default exports and any other unnamed use are hoisted into a generated
// `_defaultExport` constant declared before the statement that used them.
// The tag import itself is removed.
//
// # Interpolations
//
// Expressions inside `${}` are kept verbatim in the output, so they may only
// reference names that are declared in the module or are well-known
// globals. References to `this` are rejected: external styles have no
// component instance.
//
// # Plugins
//
// The CSS of every block runs through a pipeline of plugins before it is
// compiled. The pipeline is built once per process from the first
// configuration seen; see Options and pipeline.Memo.
package jsxstyle

import (
	"fmt"

	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/transform"
)

// Stats summarizes what a transform changed in one file.
type Stats = transform.Stats

// NewMemo returns the pipeline memo shared by every file of a run.
func NewMemo() *pipeline.Memo { return pipeline.NewMemo(nil) }

// TransformSource rewrites the JavaScript module src. When nothing matched
// the original bytes are returned. A nil memo builds a private pipeline.
func TransformSource(src []byte, filename string, opts Options, memo *pipeline.Memo) ([]byte, Stats, error) {
	if memo == nil {
		memo = NewMemo()
	}

	file, err := jsast.Parse(filename, src)
	if err != nil {
		return nil, Stats{}, err
	}

	p, err := memo.Get(opts.Plugins, opts.pipelineOptions())
	if err != nil {
		return nil, Stats{}, fmt.Errorf("building css pipeline: %w", err)
	}

	stats, err := transform.Transform(file, opts.transformOptions(p))
	if err != nil {
		return nil, Stats{}, err
	}
	if !stats.Changed() {
		return src, stats, nil
	}
	return file.Print(), stats, nil
}
