package jsxstyle

import (
	"github.com/yacobolo/jsxstyle/internal/csscompile"
	"github.com/yacobolo/jsxstyle/internal/pipeline"
	"github.com/yacobolo/jsxstyle/internal/transform"
)

// ProductionMode is the build mode that turns on split rules when
// OptimizeForSpeed is unset.
const ProductionMode = "production"

// Options configure the transform of a single file. The zero value is
// usable: styled-jsx/css is the tag module, vendor prefixing is on, and
// rules are split only in production builds.
type Options struct {
	TagModule        string                  `json:"tagModule" koanf:"tag-module"`
	Plugins          []pipeline.PluginConfig `json:"plugins" koanf:"plugins"`
	VendorPrefix     *bool                   `json:"vendorPrefix" koanf:"vendor-prefix"`
	SourceMaps       bool                    `json:"sourceMaps" koanf:"source-maps"`
	OptimizeForSpeed *bool                   `json:"optimizeForSpeed" koanf:"optimize-for-speed"`

	// BuildMode is usually NODE_ENV.
	BuildMode string `json:"-" koanf:"-"`
}

// SplitRules reports whether compiled CSS is emitted as one fragment per
// top-level rule.
func (o Options) SplitRules() bool {
	if o.OptimizeForSpeed != nil {
		return *o.OptimizeForSpeed
	}
	return o.BuildMode == ProductionMode
}

// Prefix reports whether vendor prefixes are added.
func (o Options) Prefix() bool {
	return o.VendorPrefix == nil || *o.VendorPrefix
}

func (o Options) tagModule() string {
	if o.TagModule == "" {
		return transform.DefaultTagModule
	}
	return o.TagModule
}

func (o Options) pipelineOptions() pipeline.Options {
	return pipeline.Options{SourceMaps: o.SourceMaps, VendorPrefix: o.Prefix()}
}

func (o Options) transformOptions(p *pipeline.Pipeline) transform.Options {
	return transform.Options{
		TagModule:    o.TagModule,
		Pipeline:     p,
		VendorPrefix: o.Prefix(),
		SplitRules:   o.SplitRules(),
		File:         csscompile.FileInfo{SourceMaps: o.SourceMaps},
	}
}

// Bool returns a pointer to b, for the optional fields of Options.
func Bool(b bool) *bool { return &b }
