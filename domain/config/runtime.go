package config

import "sync/atomic"

// Runtime publishes the active domain configuration to request goroutines.
// Readers get an immutable snapshot; an update derives a fresh copy and swaps
// the whole pointer, so a hot reload never races with an in-flight traversal.
type Runtime struct {
	current atomic.Pointer[DomainConfig]
}

// NewRuntime creates a runtime holding the given configuration as the first
// snapshot. A nil configuration falls back to the defaults.
func NewRuntime(cfg *DomainConfig) *Runtime {
	if cfg == nil {
		cfg = DefaultDomainConfig()
	}
	r := &Runtime{}
	r.current.Store(cfg)
	return r
}

// Current returns the active snapshot. Callers must treat it as read-only;
// a single operation should load it once so its limits stay consistent.
func (r *Runtime) Current() *DomainConfig {
	return r.current.Load()
}

// Update derives the next snapshot from a copy of the current one and
// publishes it. Fields the mutation leaves alone keep their current values.
func (r *Runtime) Update(mutate func(DomainConfig) DomainConfig) {
	next := mutate(*r.current.Load())
	r.current.Store(&next)
}
