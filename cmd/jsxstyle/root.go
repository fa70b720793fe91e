package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jsxstyle",
	Short: "Compile styled-jsx external styles ahead of time",
	Long: `Rewrites css tagged templates imported from styled-jsx/css into plain
values carrying compiled global and scoped CSS.
Each template becomes new String(css) with __hash, __scoped and
__scopedHash attached.`,
	// Default behavior: run transform when no subcommand is given.
	// loadConfig is called here because PreRunE of transformCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runTransform(cmd.Context(), false)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".jsxstyle.yaml", "Config file path")
	pf.String("babelrc", "", "Read styled-jsx plugin options from a Babel config file")
	pf.String("tag-module", "styled-jsx/css", "Module whose import introduces the css tag")
	pf.StringSlice("plugin", nil, "CSS plugins to run, in order (repeatable)")
	pf.Bool("vendor-prefix", true, "Add vendor prefixes")
	pf.Bool("source-maps", false, "Ask plugins for source maps")
	pf.Bool("optimize-for-speed", false, "Emit one CSS string per rule (default: NODE_ENV=production)")
	pf.String("build-mode", "", "Build mode (default: $NODE_ENV)")

	_ = rootCmd.RegisterFlagCompletionFunc("plugin", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return pluginNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
