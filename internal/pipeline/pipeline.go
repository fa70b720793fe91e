// Package pipeline combines the configured CSS transform plugins into a
// single ordered pipeline.
//
// A Pipeline is expensive to assemble and is shared by every file compiled
// in a process. Memo builds it at most once; see Memo for the caveat that
// comes with that.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/yacobolo/jsxstyle/internal/jsast"
)

// Options are the process-level switches baked into a pipeline.
type Options struct {
	SourceMaps   bool
	VendorPrefix bool
}

// PluginConfig names a plugin and carries its options, mirroring the
// `"name"` and `["name", {options}]` forms of the Babel plugin list.
type PluginConfig struct {
	Name    string         `json:"name" koanf:"name"`
	Options map[string]any `json:"options" koanf:"options"`
}

// TransformOptions describe the style block a plugin is transforming.
type TransformOptions struct {
	Location     jsast.Position
	VendorPrefix bool
	SourceMaps   bool
	IsGlobal     bool
	Filename     string
}

// Plugin is a single CSS transform step.
type Plugin interface {
	Name() string
	Transform(css string, opts TransformOptions) (string, error)
}

// Pipeline is an ordered chain of plugins plus the options it was built with.
type Pipeline struct {
	plugins      []Plugin
	SourceMaps   bool
	VendorPrefix bool
}

// Combine resolves every plugin config against the built-in registry.
func Combine(configs []PluginConfig, opts Options) (*Pipeline, error) {
	return Builtins().Combine(configs, opts)
}

// Apply runs css through every plugin in order. Plugin errors are returned
// as they are.
func (p *Pipeline) Apply(css string, opts TransformOptions) (string, error) {
	for _, plugin := range p.plugins {
		out, err := plugin.Transform(css, opts)
		if err != nil {
			return "", err
		}
		css = out
	}
	return css, nil
}

// Plugins returns the plugin names in execution order.
func (p *Pipeline) Plugins() []string {
	names := make([]string, len(p.plugins))
	for i, plugin := range p.plugins {
		names[i] = plugin.Name()
	}
	return names
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("pipeline[%s] vendorPrefix=%t sourceMaps=%t",
		strings.Join(p.Plugins(), ","), p.VendorPrefix, p.SourceMaps)
}
