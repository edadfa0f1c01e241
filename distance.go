package rosomaxa

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// relativeDistanceEpsilon floors the per-component denominator so that two
// all-zero (or near-zero) fitness vectors don't produce a division blowup.
const relativeDistanceEpsilon = 1e-9

// relativeDistance is the Euclidean norm of the componentwise relative
// difference (aᵢ−bᵢ)/max(|aᵢ|,|bᵢ|,ε). Used by optimizeNetwork to rank
// nodes by how far their best-held individual sits from the elite
// archive's best, in fitness space rather than descriptor-weight space.
func relativeDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		denom := math.Max(math.Abs(a[i]), math.Abs(b[i]))
		denom = math.Max(denom, relativeDistanceEpsilon)
		diff[i] = (a[i] - b[i]) / denom
	}
	return floats.Norm(diff, 2)
}
