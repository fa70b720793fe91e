package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPlugin is returned when a configured plugin is not registered.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Factory builds a plugin from its options.
type Factory func(options map[string]any) (Plugin, error)

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

var (
	builtins     *Registry
	builtinsOnce sync.Once
)

// Builtins returns the registry holding the bundled plugins.
func Builtins() *Registry {
	builtinsOnce.Do(func() {
		builtins = NewRegistry()
		builtins.Register("strip-comments", newStripComments)
		builtins.Register("custom-properties", newCustomProperties)
		builtins.Register("normalize-colors", newNormalizeColors)
	})
	return builtins
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Names lists the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Combine instantiates every configured plugin, in order.
func (r *Registry) Combine(configs []PluginConfig, opts Options) (*Pipeline, error) {
	p := &Pipeline{
		SourceMaps:   opts.SourceMaps,
		VendorPrefix: opts.VendorPrefix,
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cfg := range configs {
		factory, ok := r.factories[cfg.Name]
		if !ok {
			return nil, fmt.Errorf("plugin %q: %w", cfg.Name, ErrUnknownPlugin)
		}
		plugin, err := factory(cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", cfg.Name, err)
		}
		p.plugins = append(p.plugins, plugin)
	}
	return p, nil
}
