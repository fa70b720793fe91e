package jsxstyle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yacobolo/jsxstyle/internal/pipeline"
)

// Config holds a batch run over many files
type Config struct {
	Paths   []string // Glob patterns of files to transform
	OutDir  string   // Output root; "" writes next to the input
	OutExt  string   // Replaces the input extension, e.g. ".styles.js"
	Jobs    int      // Worker count; 0 means GOMAXPROCS
	DryRun  bool     // Transform but write nothing
	Verbose bool
	Log     io.Writer // Verbose output; defaults to os.Stdout

	Options Options
	Memo    *pipeline.Memo // Shared pipeline; nil builds one for the run
}

// FileResult is the outcome of one file
type FileResult struct {
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`
	Stats   Stats  `json:"stats"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written"`
	Err     error  `json:"-"`
}

// Result contains the outcome of a batch run
type Result struct {
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
	FilesChanged    int
	FilesWritten    int
	Templates       int

	Files  []FileResult // In discovery order
	Issues []Issue
}

// ErrorCount returns the number of error-severity issues
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Run is the main entry point of a batch run. Per-file failures are
// collected as issues and do not stop the run; the returned error is for
// failures of the run itself.
func Run(ctx context.Context, config Config) (*Result, error) {
	if config.Memo == nil {
		config.Memo = NewMemo()
	}
	logf := newLogger(config)

	// 1. Discover files
	files, stats, err := DiscoverFiles(config.Paths, config.OutExt)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result := &Result{
		FilesDiscovered: stats.FilesDiscovered,
		FilesScanned:    stats.FilesScanned,
		FilesSkipped:    stats.FilesSkipped,
	}
	logf("Found %d JavaScript files (%d skipped)\n", stats.FilesScanned, stats.FilesSkipped)

	// 2. Transform concurrently, collect in discovery order
	result.Files = processFiles(ctx, files, config, logf)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Summarize
	module := config.Options.tagModule()
	for _, fr := range result.Files {
		result.Templates += fr.Stats.Templates
		if fr.Changed {
			result.FilesChanged++
		}
		if fr.Written {
			result.FilesWritten++
		}
		if fr.Stats.ImportsRemoved > 0 && fr.Stats.Templates == 0 {
			result.Issues = append(result.Issues, Issue{
				FromLinter: LinterName,
				Severity:   SeverityWarning,
				Text:       fmt.Sprintf(IssueUnusedImport, module),
				Pos:        IssuePos{Filename: fr.Path, Line: 1, Column: 1},
			})
		}
	}
	for _, fr := range result.Files {
		if fr.Err == nil {
			continue
		}
		src, _ := os.ReadFile(fr.Path)
		result.Issues = append(result.Issues, issueFromError(fr.Path, src, fr.Err))
	}

	logf("Transformed %d templates in %d files\n", result.Templates, result.FilesChanged)
	return result, nil
}

func newLogger(config Config) func(format string, args ...any) {
	if !config.Verbose {
		return func(string, ...any) {}
	}
	w := config.Log
	if w == nil {
		w = os.Stdout
	}
	var mu sync.Mutex
	return func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(w, format, args...)
	}
}

// processFiles fans files out to a fixed set of workers
func processFiles(ctx context.Context, files []string, config Config, logf func(string, ...any)) []FileResult {
	numWorkers := config.Jobs
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]FileResult, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					results[idx] = FileResult{Path: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = processFile(files[idx], config, logf)
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	return results
}

func processFile(path string, config Config, logf func(string, ...any)) FileResult {
	fr := FileResult{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		fr.Err = err
		return fr
	}

	out := src
	if mentionsModule(src, config.Options.tagModule()) {
		logf("Transforming %s\n", path)
		out, fr.Stats, err = TransformSource(src, path, config.Options, config.Memo)
		if err != nil {
			fr.Err = err
			return fr
		}
		fr.Changed = fr.Stats.Changed()
	}

	fr.Output = outputPath(path, config.OutDir, config.OutExt)
	inPlace := fr.Output == path
	if config.DryRun || (inPlace && !fr.Changed) {
		return fr
	}

	if err := os.MkdirAll(filepath.Dir(fr.Output), 0o755); err != nil {
		fr.Err = fmt.Errorf("creating output directory: %w", err)
		return fr
	}
	if err := os.WriteFile(fr.Output, out, 0o644); err != nil {
		fr.Err = fmt.Errorf("writing %s: %w", fr.Output, err)
		return fr
	}
	fr.Written = true
	return fr
}

// outputPath maps an input file to where its output goes. Relative inputs
// keep their directory structure under outDir; inputs outside the working
// tree are flattened to their base name.
func outputPath(path, outDir, outExt string) string {
	out := path
	if outExt != "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + outExt
	}
	if outDir == "" {
		return out
	}

	rel := out
	if filepath.IsAbs(rel) {
		rel = relToWorkDir(rel)
	}
	rel = filepath.Clean(rel)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(rel)
	}
	return filepath.Join(outDir, rel)
}
