package pipeline

import "sync"

// Memo builds a pipeline once and hands the same one out afterwards.
//
// The arguments of the first Get call win: later calls with a different
// plugin list or different options still receive the first pipeline. This
// matches how the transform has always behaved when several files with
// different configurations are compiled in one process; create a separate
// Memo when that matters.
type Memo struct {
	registry *Registry

	once     sync.Once
	pipeline *Pipeline
	err      error
}

// NewMemo returns a memo resolving plugins against registry. A nil
// registry means the built-ins.
func NewMemo(registry *Registry) *Memo {
	if registry == nil {
		registry = Builtins()
	}
	return &Memo{registry: registry}
}

// Get returns the memoized pipeline, building it on first use. Safe for
// concurrent use.
func (m *Memo) Get(configs []PluginConfig, opts Options) (*Pipeline, error) {
	m.once.Do(func() {
		m.pipeline, m.err = m.registry.Combine(configs, opts)
	})
	return m.pipeline, m.err
}
