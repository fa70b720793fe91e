package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/jsxstyle"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence:
// flags > env > config file > babelrc > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".jsxstyle.yaml"
	}
	babelrcPath, _ := cmd.Flags().GetString("babelrc")

	if err := loadConfigFromPath(configPath, babelrcPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set).
	// Flag defaults are left out so they cannot shadow the sectioned keys
	// of the config file; the getters below supply them instead.
	flags := cmd.Flags()
	changed := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(changed, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a Babel config, a YAML file
// and environment variables. It is separate from loadConfig to allow
// testing without a cobra command.
func loadConfigFromPath(configPath, babelrcPath string) error {
	// 1. Babel config (lowest precedence among providers)
	if babelrcPath != "" {
		if err := k.Load(babelProvider(babelrcPath, buildModeFromEnv()), nil); err != nil {
			return fmt.Errorf("loading babel config %s: %w", babelrcPath, err)
		}
	}

	// 2. Config file
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 3. Environment variables (JSXSTYLE_* prefix)
	if err := k.Load(env.Provider("JSXSTYLE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. A double
// underscore separates sections and a single one stands for a dash:
//
//	JSXSTYLE_VENDOR_PREFIX       -> vendor-prefix
//	JSXSTYLE_TRANSFORM__OUT_DIR  -> transform.out-dir
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "JSXSTYLE_"))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// buildModeFromEnv is the build mode when none is configured.
func buildModeFromEnv() string {
	return os.Getenv("NODE_ENV")
}

// buildOptions constructs the per-file transform options from koanf state.
func buildOptions() (jsxstyle.Options, error) {
	opts := jsxstyle.Options{
		TagModule:        getStringWithFallback("tag-module", "tag-module", ""),
		SourceMaps:       getBoolWithFallback("source-maps", "source-maps", false),
		VendorPrefix:     getOptionalBool("vendor-prefix"),
		OptimizeForSpeed: getOptionalBool("optimize-for-speed"),
		BuildMode:        getStringWithFallback("build-mode", "build-mode", buildModeFromEnv()),
	}

	// Flag key first, then config key
	if names := k.Strings("plugin"); len(names) > 0 {
		for _, name := range names {
			opts.Plugins = append(opts.Plugins, pipeline.PluginConfig{Name: name})
		}
	} else if raw := k.Get("plugins"); raw != nil {
		plugins, err := parsePlugins(raw)
		if err != nil {
			return opts, err
		}
		opts.Plugins = plugins
	}

	return opts, nil
}

// buildRunConfig constructs the library's Config struct from koanf state.
func buildRunConfig(dryRun bool) (jsxstyle.Config, error) {
	opts, err := buildOptions()
	if err != nil {
		return jsxstyle.Config{}, err
	}

	config := jsxstyle.Config{
		OutDir:  getStringWithFallback("out-dir", "transform.out-dir", "dist"),
		OutExt:  getStringWithFallback("out-ext", "transform.out-ext", ""),
		Jobs:    getIntWithFallback("jobs", "transform.jobs", 0),
		DryRun:  dryRun,
		Verbose: getBoolWithFallback("verbose", "verbose", false),
		Options: opts,
	}

	// Handle paths: check flag key first, then config key
	if paths := k.Strings("paths"); len(paths) > 0 {
		config.Paths = paths
	} else if paths := k.Strings("transform.paths"); len(paths) > 0 {
		config.Paths = paths
	} else {
		config.Paths = []string{"src/**/*.js", "src/**/*.jsx"}
	}

	if getBoolWithFallback("in-place", "transform.in-place", false) {
		config.OutDir = ""
	}

	return config, nil
}

// buildReportConfig constructs the reporter settings from koanf state.
func buildReportConfig() jsxstyle.ReportConfig {
	return jsxstyle.ReportConfig{
		PrintIssuedLines: getBoolWithFallback("print-lines", "transform.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "transform.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
}

// parsePlugins accepts the plugin list forms of the config file and of
// Babel: a bare name, a {name, options} map, or a [name, options] pair.
func parsePlugins(raw any) ([]pipeline.PluginConfig, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("plugins: expected a list, got %T", raw)
	}

	plugins := make([]pipeline.PluginConfig, 0, len(list))
	for i, entry := range list {
		var pc pipeline.PluginConfig
		switch v := entry.(type) {
		case string:
			pc.Name = v
		case map[string]any:
			name, _ := v["name"].(string)
			pc.Name = name
			if o, ok := v["options"].(map[string]any); ok {
				pc.Options = o
			}
		case []any:
			if len(v) == 0 || len(v) > 2 {
				return nil, fmt.Errorf("plugins[%d]: expected [name, options]", i)
			}
			name, _ := v[0].(string)
			pc.Name = name
			if len(v) == 2 {
				o, ok := v[1].(map[string]any)
				if !ok {
					return nil, fmt.Errorf("plugins[%d]: options must be an object, got %T", i, v[1])
				}
				pc.Options = o
			}
		default:
			return nil, fmt.Errorf("plugins[%d]: unsupported entry %T", i, entry)
		}
		if pc.Name == "" {
			return nil, fmt.Errorf("plugins[%d]: missing name", i)
		}
		plugins = append(plugins, pc)
	}
	return plugins, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getOptionalBool returns nil when key is unset so the library default applies.
func getOptionalBool(key string) *bool {
	if !k.Exists(key) {
		return nil
	}
	return jsxstyle.Bool(k.Bool(key))
}

// pluginNames lists the built-in CSS plugins.
func pluginNames() []string {
	return pipeline.Builtins().Names()
}
