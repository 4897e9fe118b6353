// Package cache provides caching for routing results and rendered
// topologies.
//
// Routing is deterministic, so a result is fully identified by the circuit,
// the coupling graph, and the routing options; the [Keyer] turns those into
// stable cache keys. Three backends implement [Cache]:
//   - [FileCache]: directory-backed storage for CLI usage
//   - [RedisCache]: shared storage for multi-instance server deployments
//   - [NullCache]: a no-op backend that disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact type. Routing results are pure functions of
// their key, so they could live forever; the TTLs below just bound disk
// and Redis growth.
const (
	// TTLRoute is how long routing results stay cached.
	TTLRoute = 30 * 24 * time.Hour

	// TTLTopology is how long resolved topologies stay cached.
	TTLTopology = 30 * 24 * time.Hour

	// TTLRender is how long rendered topology artifacts stay cached.
	TTLRender = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional
// expiration. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh; expired or missing entries are not an
	// error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// RouteKeyOpts are the routing options that change the routing result and
// therefore must be part of the cache key.
type RouteKeyOpts struct {
	Seed          uint64 `json:"seed"`
	Trials        int    `json:"trials"`
	AttemptCap    int    `json:"attempt_cap"`
	InitialLayout []int  `json:"initial_layout,omitempty"`
}

// RenderKeyOpts identify one rendering of a topology.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the different artifact types.
type Keyer interface {
	// RouteKey generates a key for a routing result, given content hashes
	// of the circuit and the topology plus the options that influence the
	// outcome.
	RouteKey(circuitHash, topologyHash string, opts RouteKeyOpts) string

	// TopologyKey generates a key for a resolved topology spec.
	TopologyKey(spec string) string

	// RenderKey generates a key for a rendered topology artifact.
	RenderKey(topologyHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RouteKey generates a key for a routing result.
func (k *DefaultKeyer) RouteKey(circuitHash, topologyHash string, opts RouteKeyOpts) string {
	return hashKey("route", circuitHash, topologyHash, opts)
}

// TopologyKey generates a key for a resolved topology spec.
// Specs are short and already safe, so the key stays readable.
func (k *DefaultKeyer) TopologyKey(spec string) string {
	return "topology:" + spec
}

// RenderKey generates a key for a rendered topology artifact.
func (k *DefaultKeyer) RenderKey(topologyHash string, opts RenderKeyOpts) string {
	return hashKey("render", topologyHash, opts)
}
