package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Names under which the styled-jsx Babel plugin is configured.
const (
	babelPluginName = "styled-jsx/babel"
	nextPresetName  = "next/babel"
	nextPresetKey   = "styled-jsx"
)

// babelOptionKeys maps styled-jsx plugin options to config keys.
var babelOptionKeys = map[string]string{
	"plugins":          "plugins",
	"vendorPrefix":     "vendor-prefix",
	"sourceMaps":       "source-maps",
	"optimizeForSpeed": "optimize-for-speed",
}

// babelConfig is the subset of a .babelrc / babel.config.json we read.
type babelConfig struct {
	Presets []any                  `json:"presets"`
	Plugins []any                  `json:"plugins"`
	Env     map[string]babelConfig `json:"env"`
}

// babelRC is a koanf provider reading styled-jsx options out of a Babel
// config file. Comments and trailing commas are allowed.
type babelRC struct {
	path string
	env  string
}

func babelProvider(path, env string) *babelRC {
	if env == "" {
		env = "development"
	}
	return &babelRC{path: path, env: env}
}

// ReadBytes is not supported; Read returns the options already mapped.
func (b *babelRC) ReadBytes() ([]byte, error) {
	return nil, errors.New("babelrc provider does not support this method")
}

// Read returns the styled-jsx options as config keys. The env section
// matching the build mode overrides the top level. A config that does not
// mention styled-jsx yields an empty map.
func (b *babelRC) Read() (map[string]any, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, err
	}

	var cfg babelConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", b.path, err)
	}

	out := make(map[string]any)
	for _, c := range []babelConfig{cfg, cfg.Env[b.env]} {
		opts, ok := styledJSXOptions(c)
		if !ok {
			continue
		}
		for name, key := range babelOptionKeys {
			if v, ok := opts[name]; ok {
				out[key] = v
			}
		}
	}
	return out, nil
}

// styledJSXOptions finds the options of the styled-jsx plugin, given either
// directly in plugins or through the options of the Next.js preset.
func styledJSXOptions(c babelConfig) (map[string]any, bool) {
	for _, entry := range c.Plugins {
		if name, opts := babelEntry(entry); name == babelPluginName {
			return opts, true
		}
	}
	for _, entry := range c.Presets {
		if name, opts := babelEntry(entry); name == nextPresetName {
			if sj, ok := opts[nextPresetKey].(map[string]any); ok {
				return sj, true
			}
		}
	}
	return nil, false
}

// babelEntry splits a plugin or preset entry: "name" or ["name", {options}].
func babelEntry(entry any) (string, map[string]any) {
	switch v := entry.(type) {
	case string:
		return v, map[string]any{}
	case []any:
		if len(v) == 0 {
			return "", nil
		}
		name, _ := v[0].(string)
		opts := map[string]any{}
		if len(v) > 1 {
			if o, ok := v[1].(map[string]any); ok {
				opts = o
			}
		}
		return name, opts
	}
	return "", nil
}
