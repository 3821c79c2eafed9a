// Package matstat computes summary statistics over decoded matrices.
package matstat

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when two operands hold different element counts.
var ErrLengthMismatch = errors.New("matstat: length mismatch")

// Comparison summarises the difference between a reference matrix A and a
// candidate B.
type Comparison struct {
	// RelativeResidual is ||A-B||_F / ||A||_F, or 1 when A is all zero.
	RelativeResidual float64 `json:"relative_residual"`
	MaxAbsError      float64 `json:"max_abs_error"`
}

// Compare measures b against the reference a. Both must be laid out the same
// way; only element-wise differences matter.
func Compare(a, b []float64) (Comparison, error) {
	if len(a) != len(b) {
		return Comparison{}, fmt.Errorf("%w: %d vs %d elements", ErrLengthMismatch, len(a), len(b))
	}

	var base, diff, maxErr float64
	for i := range a {
		d := a[i] - b[i]
		base += a[i] * a[i]
		diff += d * d
		if ad := math.Abs(d); ad > maxErr || math.IsNaN(ad) {
			maxErr = ad
		}
	}

	res := Comparison{RelativeResidual: 1, MaxAbsError: maxErr}
	if base != 0 {
		res.RelativeResidual = math.Sqrt(diff / base)
	}
	return res, nil
}
