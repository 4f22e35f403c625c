package wavemath

import "math"

// FermiDirac is the logistic step a / (exp((x−u)/kt) + 1): ≈a well below u,
// ≈0 well above it, with kt controlling the width of the transition.
func FermiDirac(a, u, kt, x float32) float32 {
	return a / (float32(math.Exp(float64((x-u)/kt))) + 1)
}

// Gaussian is the 2D bell a·exp(−((x−x0)²/(2sx²) + (y−y0)²/(2sy²))).
func Gaussian(a, x0, y0, sx, sy, x, y float32) float32 {
	dx := float64(x - x0)
	dy := float64(y - y0)
	vx := 2 * float64(sx) * float64(sx)
	vy := 2 * float64(sy) * float64(sy)
	return a * float32(math.Exp(-(dx*dx/vx + dy*dy/vy)))
}
