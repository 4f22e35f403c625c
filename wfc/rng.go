// Package wfc - RNG utilities.
//
// Goals:
//   - Determinism: same seed ⇒ identical maps across platforms.
//   - No time-based sources anywhere; callers that want variety pass a seed.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. One engine, one RNG.
package wfc

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a base seed with an attempt number, giving retry loops
// decorrelated but reproducible seeds. DeriveSeed(s, 0) == s.
func DeriveSeed(base int64, attempt int) int64 {
	if attempt == 0 {
		return base
	}
	// SplitMix64 finalizer.
	x := uint64(base) ^ (uint64(attempt) + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// jitter draws uniform noise in [−half, +half].
func jitter(r *rand.Rand, half float32) float32 {
	if half == 0 {
		return 0
	}
	return (r.Float32()*2 - 1) * half
}

// sample draws an index with probability proportional to w. Entries must be
// non-negative and finite; ok is false when their sum is not positive.
func sample(r *rand.Rand, w []float32) (int, bool) {
	var total float64
	for _, v := range w {
		if v != v || v < 0 {
			return -1, false
		}
		total += float64(v)
	}
	if total <= 0 {
		return -1, false
	}
	u := r.Float64() * total
	last := -1
	var acc float64
	for i, v := range w {
		if v == 0 {
			continue
		}
		last = i
		acc += float64(v)
		if u < acc {
			return i, true
		}
	}
	// rounding left u at the top of the range
	return last, true
}
