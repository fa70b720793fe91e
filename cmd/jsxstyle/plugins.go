package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the built-in CSS plugins and the configured pipeline",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Built-in plugins: %s\n", strings.Join(pluginNames(), ", "))

		opts, err := buildOptions()
		if err != nil {
			return err
		}
		p, err := pipeline.Combine(opts.Plugins, pipeline.Options{
			SourceMaps:   opts.SourceMaps,
			VendorPrefix: opts.Prefix(),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Configured: %s\n", p)
		return nil
	},
}
