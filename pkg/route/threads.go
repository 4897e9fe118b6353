package route

import (
	"os"
	"runtime"
	"strconv"

	"github.com/kwyip/qroute/pkg/errors"
)

// Environment variables consulted by [ThreadConfigFromEnv]. The engine
// itself never reads the environment; callers resolve a [ThreadConfig] once
// at the boundary and pass it in.
const (
	// EnvMaxThreads sets the worker pool size (integer >= 1).
	// Unset means the logical CPU count.
	EnvMaxThreads = "MAX_ROUTING_THREADS"

	// EnvForceMultithreading overrides the oversubscription guard (boolean
	// literals per strconv.ParseBool, e.g. "TRUE"/"FALSE").
	EnvForceMultithreading = "FORCE_MULTITHREADING"
)

// ThreadConfig is the worker-pool configuration for one routing invocation,
// resolved once before any trial runs and read-only afterwards.
type ThreadConfig struct {
	// MaxThreads is the requested worker count. Zero means the default
	// (logical CPU count); negative values fail validation. The resolved
	// pool never exceeds the logical CPU count.
	MaxThreads int

	// ForceMultithreading honors MaxThreads even inside an outer parallel
	// context, overriding the oversubscription guard.
	ForceMultithreading bool

	// OuterParallel reports that the caller is itself one of several
	// circuits being routed in parallel by an outer process-level
	// dispatcher. It is supplied programmatically, never read from the
	// environment or inferred from process state.
	OuterParallel bool
}

// ThreadConfigFromEnv resolves a ThreadConfig from environment variables.
//
// lookup is typically os.LookupEnv (used when nil; injectable for tests).
// Invalid values fail immediately with a CONFIG_INVALID error rather than
// falling back to defaults, so misconfiguration is visible instead of
// silently degrading to the wrong pool size. OuterParallel is not an
// environment concern and is always left false.
func ThreadConfigFromEnv(lookup func(string) (string, bool)) (ThreadConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var tc ThreadConfig

	if raw, ok := lookup(EnvMaxThreads); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ThreadConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"%s must be an integer >= 1, got %q", EnvMaxThreads, raw)
		}
		if n < 1 {
			return ThreadConfig{}, errors.New(errors.ErrCodeInvalidConfig,
				"%s must be >= 1, got %d", EnvMaxThreads, n)
		}
		tc.MaxThreads = n
	}

	if raw, ok := lookup(EnvForceMultithreading); ok {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return ThreadConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"%s must be a boolean, got %q", EnvForceMultithreading, raw)
		}
		tc.ForceMultithreading = force
	}

	return tc, nil
}

// Validate checks the configuration. Explicitly negative thread counts are a
// caller bug and fail with CONFIG_INVALID; zero is the documented default.
func (tc ThreadConfig) Validate() error {
	if tc.MaxThreads < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"MaxThreads must be >= 0 (0 = logical CPU count), got %d", tc.MaxThreads)
	}
	return nil
}

// Workers resolves the effective worker-pool size.
//
// The requested count (default: logical CPU count) is capped at the logical
// CPU count; more workers than CPUs cannot help a CPU-bound search. When
// OuterParallel is set and ForceMultithreading is not, the pool is exactly 1
// regardless of the request: the outer dispatcher already owns the
// parallelism, and P processes spawning C threads each would oversubscribe
// the machine P×C-fold.
func (tc ThreadConfig) Workers() int {
	if tc.OuterParallel && !tc.ForceMultithreading {
		return 1
	}

	cpus := runtime.NumCPU()
	requested := tc.MaxThreads
	if requested == 0 {
		requested = cpus
	}
	if requested > cpus {
		requested = cpus
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}
