package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or projects
// need separate cache namespaces over one shared backend.
//
// Example usage:
//
//	// User-specific keys for private circuits
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared preset topologies
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RouteKey generates a prefixed key for a routing result.
func (k *ScopedKeyer) RouteKey(circuitHash, topologyHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(circuitHash, topologyHash, opts)
}

// TopologyKey generates a prefixed key for a resolved topology spec.
func (k *ScopedKeyer) TopologyKey(spec string) string {
	return k.prefix + k.inner.TopologyKey(spec)
}

// RenderKey generates a prefixed key for a rendered topology artifact.
func (k *ScopedKeyer) RenderKey(topologyHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(topologyHash, opts)
}
