package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .jsxstyle.yaml config file",
	Long:  `Create a .jsxstyle.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".jsxstyle.yaml"); err == nil && !force {
			return fmt.Errorf(".jsxstyle.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".jsxstyle.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .jsxstyle.yaml")
		return nil
	},
}

const defaultConfig = `# jsxstyle configuration

# Shared settings
tag-module: styled-jsx/css
verbose: false
vendor-prefix: true
source-maps: false
# optimize-for-speed: true   # default: NODE_ENV=production

# CSS plugins, run in order before compiling
plugins:
  - strip-comments
  # - name: custom-properties
  #   options:
  #     strict: true
  #     variables:
  #       brand: "#0070f3"
  # - normalize-colors

# Transform settings
transform:
  paths:
    - "src/**/*.js"
    - "src/**/*.jsx"
  out-dir: dist
  out-ext: ""
  in-place: false
  jobs: 0                  # 0 = number of CPUs
  strict: false
  output-format: issues    # issues | summary | full | json
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
