package kmeans

import "math/rand"

// defaultRNGSeed is the fixed seed used when Config.Seed is 0, so that the
// zero Config is still reproducible.
const defaultRNGSeed int64 = 1

// effectiveSeed applies the seed==0 ⇒ defaultRNGSeed policy.
func effectiveSeed(seed int64) int64 {
	if seed == 0 {
		return defaultRNGSeed
	}
	return seed
}

// rngFromSeed returns a deterministic *rand.Rand for seed (after the
// seed==0 policy). The generator is owned by one run and never shared.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(effectiveSeed(seed)))
}

// deriveSeed mixes a parent seed and a stream id into an independent seed
// for restart number `stream` (SplitMix64 finalizer).
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return effectiveSeed(int64(x))
}
