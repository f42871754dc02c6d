package config

import "sync/atomic"

// Provider hands out the current configuration. Handlers read through it on
// every request, so a reload swaps the whole Config atomically and in-flight
// requests keep the snapshot they started with.
type Provider struct {
	current atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	p := &Provider{}
	p.current.Store(cfg)
	return p
}

func (p *Provider) Get() *Config {
	return p.current.Load()
}

func (p *Provider) Update(cfg *Config) {
	p.current.Store(cfg)
}
