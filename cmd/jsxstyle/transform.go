package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/jsxstyle"
)

// errIssuesFound makes the process exit 1 after issues were printed.
var errIssuesFound = errors.New("issues found")

var transformCmd = &cobra.Command{
	Use:     "transform [paths...]",
	Aliases: []string{"build"},
	Short:   "Compile css tagged templates in JavaScript files",
	Long: `Rewrite every css tagged template imported from styled-jsx/css into
plain values carrying compiled global and scoped CSS, and write the
result to the output directory.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfigWithPaths(cmd, args)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTransform(cmd.Context(), false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report files that would fail to transform",
	Long: `Transform files without writing anything. Exits 1 when a file fails,
for CI and pre-commit hooks.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfigWithPaths(cmd, args)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTransform(cmd.Context(), true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{transformCmd, checkCmd} {
		f := cmd.Flags()
		f.StringSlice("paths", []string{"src/**/*.js", "src/**/*.jsx"}, "Glob patterns of files to transform")
		f.Int("jobs", 0, "Files transformed in parallel (0 = number of CPUs)")
		f.Bool("strict", false, "Exit 1 on warnings too")
		f.String("output-format", "", "Output format: issues|summary|full|json")
		f.Bool("print-lines", true, "Show source lines with issues")
		f.Bool("print-linter-name", true, "Show (jsxstyle) suffix on issues")

		_ = cmd.RegisterFlagCompletionFunc("output-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"issues", "summary", "full", "json"}, cobra.ShellCompDirectiveNoFileComp
		})
	}

	f := transformCmd.Flags()
	f.String("out-dir", "dist", "Output directory, mirroring the input tree")
	f.String("out-ext", "", "Replace the input extension, e.g. .styles.js")
	f.Bool("in-place", false, "Write next to the input instead of --out-dir")
}

// loadConfigWithPaths loads configuration and lets positional arguments
// stand in for --paths.
func loadConfigWithPaths(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	if len(args) > 0 {
		if err := k.Set("paths", args); err != nil {
			return fmt.Errorf("setting paths: %w", err)
		}
	}
	return nil
}

// runTransform is shared between `jsxstyle transform` and `jsxstyle check`.
func runTransform(ctx context.Context, dryRun bool) error {
	config, err := buildRunConfig(dryRun)
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if quiet {
		config.Verbose = false
	}
	// Progress goes to stderr so JSON output stays clean
	config.Log = os.Stderr

	result, err := jsxstyle.Run(ctx, config)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	outputFormat := getStringWithFallback("output-format", "transform.output-format", "")
	format := jsxstyle.DetermineOutputFormat(outputFormat, quiet)
	if !quiet {
		jsxstyle.WriteOutput(os.Stdout, result, format, buildReportConfig())
	}

	// Default: only errors fail the run. Strict: any issue does.
	strict := getBoolWithFallback("strict", "transform.strict", false)
	if result.ErrorCount() > 0 || (strict && len(result.Issues) > 0) {
		return errIssuesFound
	}
	return nil
}
