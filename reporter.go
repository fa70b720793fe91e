package jsxstyle

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReportConfig controls how results are printed
type ReportConfig struct {
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (jsxstyle) suffix
	UseColors        bool // Force color output (default: auto-detect)
}

// Reporter handles formatting and outputting run results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	if config.UseColors {
		return true
	}

	// FORCE_COLOR is honoured by GitHub Actions and most CI systems
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	sortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// sortIssues orders issues by file, then line, then column
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == SeverityWarning {
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result Result) {
	totalIssues := len(result.Issues)
	errors := result.ErrorCount()
	warnings := totalIssues - errors

	fmt.Fprintln(r.w, "")

	if errors > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s)\n",
			pluralizeCount(totalIssues, "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s\n", pluralizeCount(totalIssues, "issue", "issues"))
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see per-file results", r.useColors))
	}
}

// PrintStatistics outputs the run statistics
func (r *Reporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Transform Statistics", r.useColors))
	fmt.Fprintln(r.w, "--------------------")

	fmt.Fprintf(r.w, "Files Discovered:  %d\n", result.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:     %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:     %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Files Changed:     %d\n", result.FilesChanged)
	fmt.Fprintf(r.w, "Files Written:     %d\n", result.FilesWritten)
	fmt.Fprintf(r.w, "Templates:         %d\n", result.Templates)
	if n := result.ErrorCount(); n > 0 {
		fmt.Fprintf(r.w, "Failed Files:      %s\n", RenderStyle(StyleRed, fmt.Sprint(n), r.useColors))
	}
}

// PrintFiles lists every changed file with its template counts
func (r *Reporter) PrintFiles(result Result) {
	var changed []FileResult
	for _, fr := range result.Files {
		if fr.Changed {
			changed = append(changed, fr)
		}
	}
	if len(changed) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Changed Files", r.useColors))
	fmt.Fprintln(r.w, "-------------")

	for _, fr := range changed {
		target := ""
		if fr.Written && fr.Output != fr.Path {
			target = " → " + fr.Output
		}
		fmt.Fprintf(r.w, "%s%s (%s: %d default, %d named)\n",
			fr.Path, target,
			pluralizeCount(fr.Stats.Templates, "template", "templates"),
			fr.Stats.Default, fr.Stats.Named)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
