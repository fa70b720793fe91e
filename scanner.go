package jsxstyle

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept for transforming
	FilesSkipped    int // Files skipped due to filtering
}

// sourceExtensions are the JavaScript flavours the parser understands.
var sourceExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// sourceFilter decides which discovered files are transformed.
type sourceFilter struct {
	outExt    string
	gitignore *ignore.GitIgnore // nil when the project has none
}

// newSourceFilter reads the .gitignore of the working directory. A missing
// or unreadable file ignores nothing.
func newSourceFilter(outExt string) sourceFilter {
	f := sourceFilter{outExt: outExt}
	if gi, err := ignore.CompileIgnoreFile(".gitignore"); err == nil {
		f.gitignore = gi
	}
	return f
}

// skip reports whether path is left out: not JavaScript, vendored, a
// previous output, or gitignored. Absolute paths are outside the
// project's gitignore.
func (f sourceFilter) skip(path string) bool {
	if !isJavaScript(path) || isVendored(path) || isOutput(path, f.outExt) {
		return true
	}
	return f.gitignore != nil && !filepath.IsAbs(path) && f.gitignore.MatchesPath(path)
}

func isJavaScript(path string) bool {
	return slices.Contains(sourceExtensions, strings.ToLower(filepath.Ext(path)))
}

func isVendored(path string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(path), "/"), "node_modules")
}

// isOutput reports whether path is a file this tool wrote itself.
// Only a compound extension like ".styles.js" can tell outputs apart;
// a plain ".js" out-ext would match every source.
func isOutput(path, outExt string) bool {
	if strings.Count(outExt, ".") < 2 {
		return false
	}
	return strings.HasSuffix(path, outExt)
}

// DiscoverFiles expands glob patterns to the JavaScript files to transform.
// Results are deduplicated and keep the order of the patterns.
func DiscoverFiles(patterns []string, outExt string) ([]string, ScanStats, error) {
	var files []string
	var stats ScanStats
	filter := newSourceFilter(outExt)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			if info, err := os.Stat(match); err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if filter.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// mentionsModule is a cheap pre-filter: a file that never spells the tag
// module cannot import it, so it need not be parsed.
func mentionsModule(src []byte, module string) bool {
	return bytes.Contains(src, []byte(module))
}

// relToWorkDir makes path relative to the working directory when it can.
func relToWorkDir(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil {
		return rel
	}
	return path
}
