package route

import "math/rand/v2"

// splitmix64 is the SplitMix64 finalizer. It bijectively scrambles a 64-bit
// value with strong avalanche behavior, which makes nearby inputs (seed 1,
// seed 2, ...) produce statistically unrelated outputs.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// streamSeed derives the PCG seed for one trial's stream. Pure function of
// its inputs: no global state, no ordering dependence, no platform variance.
func streamSeed(master uint64, layer, trial int) uint64 {
	x := splitmix64(master)
	x = splitmix64(x + uint64(layer))
	x = splitmix64(x + uint64(trial))
	return x
}

// DeriveRNG returns the pseudorandom stream for one (layer, trial) pair.
//
// The same (master, layer, trial) inputs always yield a generator producing
// the same sequence, regardless of call order, goroutine, or machine. This
// is what keeps routing results independent of worker count: trials draw
// exclusively from their own derived stream, never from a shared generator
// whose consumption order would depend on scheduling.
func DeriveRNG(master uint64, layer, trial int) *rand.Rand {
	seed := streamSeed(master, layer, trial)
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
