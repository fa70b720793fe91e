package jsxstyle

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/yacobolo/jsxstyle/internal/csscompile"
	"github.com/yacobolo/jsxstyle/internal/jsast"
	"github.com/yacobolo/jsxstyle/internal/transform"
)

// LinterName is the FromLinter value of every issue.
const LinterName = "jsxstyle"

// Issue represents a single file failure in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "jsxstyle"
	Text        string   `json:"Text"`        // "unresolved reference \"theme\""
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/button.styles.js"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 15 (1-based)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueUnusedImport = "%s is imported but no tagged template uses it"
)

// locationPrefix matches the "file:line:col: " prefix of wrapped errors
var locationPrefix = regexp.MustCompile(`^(.*?):(\d+):(\d+): (.*)$`)

// issueFromError converts a transform failure into an issue. Typed errors
// carry their own position; anything else is searched for a location prefix
// and otherwise reported at the top of the file.
func issueFromError(filename string, src []byte, err error) Issue {
	issue := Issue{
		FromLinter: LinterName,
		Severity:   SeverityError,
		Text:       err.Error(),
		Pos:        IssuePos{Filename: filename},
	}

	var (
		ve  *transform.ValidationError
		cse *csscompile.SyntaxError
		jse *jsast.SyntaxError
	)
	switch {
	case errors.As(err, &ve):
		issue.Pos.Line, issue.Pos.Column = ve.Pos.Line, ve.Pos.Column
		issue.Text = trimLocation(ve.Error())
	case errors.As(err, &cse):
		issue.Pos.Line, issue.Pos.Column = cse.Line, cse.Column
		issue.Text = cse.Msg
	case errors.As(err, &jse):
		issue.Pos.Line, issue.Pos.Column = jse.Pos.Line, jse.Pos.Column
		issue.Text = trimLocation(jse.Error())
	default:
		if m := locationPrefix.FindStringSubmatch(issue.Text); m != nil {
			issue.Pos.Line, _ = strconv.Atoi(m[2])
			issue.Pos.Column, _ = strconv.Atoi(m[3])
			issue.Text = m[4]
		}
	}

	if line := sourceLine(src, issue.Pos.Line); line != "" {
		issue.SourceLines = []string{line}
	}
	return issue
}

func trimLocation(msg string) string {
	if m := locationPrefix.FindStringSubmatch(msg); m != nil {
		return m[4]
	}
	return msg
}

// sourceLine returns the 1-based line of src, or "" when out of range
func sourceLine(src []byte, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(string(src), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
