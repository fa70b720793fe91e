package jsxstyle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yacobolo/jsxstyle/internal/csscompile"
	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/transform"
)

func TestIssueFromError(t *testing.T) {
	src := []byte("line one\n\tline two\r\nline three\n")

	tests := []struct {
		name   string
		err    error
		line   int
		column int
		text   string
		source []string
	}{
		{
			name: "validation error",
			err: &transform.ValidationError{
				Kind: transform.ErrUnresolvedReference, Name: "x", Filename: "a.js",
				Pos: jsast.Position{Line: 2, Column: 5},
			},
			line:   2,
			column: 5,
			text:   `unresolved reference "x": interpolations must only reference values declared in the module`,
			source: []string{"\tline two"},
		},
		{
			name:   "css syntax error",
			err:    fmt.Errorf("compile: %w", &csscompile.SyntaxError{Filename: "a.js", Line: 3, Column: 2, Msg: "unclosed block"}),
			line:   3,
			column: 2,
			text:   "unclosed block",
			source: []string{"line three"},
		},
		{
			name:   "javascript syntax error",
			err:    &jsast.SyntaxError{File: "a.js", Pos: jsast.Position{Line: 1, Column: 6}, Text: "one"},
			line:   1,
			column: 6,
			text:   `syntax error near "one"`,
			source: []string{"line one"},
		},
		{
			name:   "located plain error",
			err:    fmt.Errorf("a.js:2:3: %w", transform.ErrUnhandledStructure),
			line:   2,
			column: 3,
			text:   "unhandled structure",
			source: []string{"\tline two"},
		},
		{
			name: "unlocated error",
			err:  errors.New("permission denied"),
			text: "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := issueFromError("a.js", src, tt.err)
			assert.Equal(t, LinterName, issue.FromLinter)
			assert.Equal(t, SeverityError, issue.Severity)
			assert.Equal(t, "a.js", issue.Pos.Filename)
			assert.Equal(t, tt.line, issue.Pos.Line)
			assert.Equal(t, tt.column, issue.Pos.Column)
			assert.Equal(t, tt.text, issue.Text)
			assert.Equal(t, tt.source, issue.SourceLines)
		})
	}
}

func TestSourceLine(t *testing.T) {
	src := []byte("a\nb\n")
	assert.Equal(t, "a", sourceLine(src, 1))
	assert.Equal(t, "b", sourceLine(src, 2))
	assert.Equal(t, "", sourceLine(src, 3))
	assert.Equal(t, "", sourceLine(src, 0))
	assert.Equal(t, "", sourceLine(src, 9))
}
