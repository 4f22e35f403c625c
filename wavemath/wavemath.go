// SPDX-License-Identifier: MIT
// Package wavemath provides the small vector kernels behind wave-function
// collapse over continuous weights: normalization, Shannon entropy and the
// multiplicative combination of a wave with an update vector.
//
// Conventions:
//   - Vectors are []float32 and are modified in place; no kernel allocates.
//   - NaN is the "undefined distribution" marker produced by Normalize when a
//     vector holds no valid mass. Entropy propagates it; nothing else creates it.
//   - A one-hot vector has entropy exactly 0. Callers that need to tell a
//     collapsed vector from a degenerate one test OneHot first.
package wavemath

import "math"

// smallestNormal is the smallest positive normal float32. Subnormal weights
// are treated as zero, matching the sanitization of raw field output.
const smallestNormal = 0x1p-126

// IsValidWeight reports whether w is finite, positive and normal.
func IsValidWeight(w float32) bool {
	return w >= smallestNormal && !math.IsInf(float64(w), 1)
}

// Normalize clamps every entry that is not finite-positive-normal to 0 and
// divides the remaining entries by their sum. If nothing remains, every entry
// becomes NaN.
// Complexity: O(n).
func Normalize(w []float32) {
	var sum float64
	for i, v := range w {
		if !IsValidWeight(v) {
			w[i] = 0
			continue
		}
		sum += float64(v)
	}
	if sum == 0 || math.IsInf(sum, 0) {
		nan := float32(math.NaN())
		for i := range w {
			w[i] = nan
		}
		return
	}
	for i, v := range w {
		w[i] = float32(float64(v) / sum)
	}
}

// Entropy returns the Shannon entropy of w in bits, −Σ p·log2(p), where p=0
// contributes nothing. The result is NaN iff w contains NaN.
// Complexity: O(n).
func Entropy(w []float32) float32 {
	var h float64
	for _, v := range w {
		p := float64(v)
		if math.IsNaN(p) {
			return float32(math.NaN())
		}
		if p <= 0 {
			continue
		}
		h -= p * math.Log2(p)
	}
	if h <= 0 {
		// one-hot: −1·log2(1) is −0, report +0
		return 0
	}
	return float32(h)
}

// Hadamard multiplies a by b element-wise in place. Lengths must match;
// extra entries of the longer vector are ignored.
func Hadamard(a, b []float32) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		a[i] *= b[i]
	}
}

// Add adds b to a element-wise in place. It is the additive combination of
// earlier generator variants and is not used by the engine.
func Add(a, b []float32) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		a[i] += b[i]
	}
}

// Combine folds update u into wave w: element-wise product, negative products
// clamped to 0, then Normalize. Returns the entropy of the result.
// Complexity: O(n).
func Combine(w, u []float32) float32 {
	Hadamard(w, u)
	for i, v := range w {
		if v < 0 {
			w[i] = 0
		}
	}
	Normalize(w)
	return Entropy(w)
}

// OneHot returns the index of the single entry equal to 1 when every other
// entry is exactly 0.
func OneHot(w []float32) (int, bool) {
	idx := -1
	for i, v := range w {
		switch v {
		case 1:
			if idx >= 0 {
				return -1, false
			}
			idx = i
		case 0:
		default:
			return -1, false
		}
	}
	return idx, idx >= 0
}

// SetOneHot overwrites w with the indicator vector of k.
func SetOneHot(w []float32, k int) {
	for i := range w {
		if i == k {
			w[i] = 1
		} else {
			w[i] = 0
		}
	}
}

// IsDegenerate reports whether w carries the NaN "no valid mass" marker.
func IsDegenerate(w []float32) bool {
	for _, v := range w {
		if v != v {
			return true
		}
	}
	return false
}

// Sum returns Σ w in float64.
func Sum(w []float32) float64 {
	var s float64
	for _, v := range w {
		s += float64(v)
	}
	return s
}
