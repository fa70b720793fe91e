package jsxstyle

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	FilesChanged int `json:"files_changed"`
	FilesWritten int `json:"files_written"`
	Templates    int `json:"templates"`
}

// JSONFile is the outcome of one file
type JSONFile struct {
	Path      string `json:"path"`
	Output    string `json:"output,omitempty"`
	Changed   bool   `json:"changed"`
	Written   bool   `json:"written"`
	Failed    bool   `json:"failed"`
	Templates int    `json:"templates"`
	Default   int    `json:"default"`
	Named     int    `json:"named"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the run result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Result to JSONOutput
func buildJSONOutput(result *Result) JSONOutput {
	errors := result.ErrorCount()

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	jsonFiles := make([]JSONFile, len(result.Files))
	for i, fr := range result.Files {
		jsonFiles[i] = JSONFile{
			Path:      fr.Path,
			Output:    fr.Output,
			Changed:   fr.Changed,
			Written:   fr.Written,
			Failed:    fr.Err != nil,
			Templates: fr.Stats.Templates,
			Default:   fr.Stats.Default,
			Named:     fr.Stats.Named,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     len(result.Issues) - errors,
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
			FilesChanged: result.FilesChanged,
			FilesWritten: result.FilesWritten,
			Templates:    result.Templates,
		},
		Files:  jsonFiles,
		Issues: jsonIssues,
	}
}
