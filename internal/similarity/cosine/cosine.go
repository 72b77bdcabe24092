// Package cosine scores two weighted vectors by the cosine of the angle
// between them and rounds scores for presentation.
package cosine

import (
	"errors"
	"fmt"
	"math"
)

var ErrDimensionMismatch = errors.New("vector dimensions differ")

// Similarity returns dot(a, b) / (|a| * |b|) clamped to [0, 1]. A zero-norm
// vector on either side yields 0. Each vector is scaled by its largest
// magnitude first so squared sums can neither overflow nor underflow.
func Similarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	scaleA, scaleB := maxAbs(a), maxAbs(b)
	if scaleA == 0 || scaleB == 0 {
		return 0, nil
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := a[i]/scaleA, b[i]/scaleB
		dot += x * y
		normA += x * x
		normB += y * y
	}
	// sqrt(|a|^2 * |b|^2) keeps self-similarity at exactly 1.
	return clamp(dot / math.Sqrt(normA*normB)), nil
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if ax := math.Abs(x); ax > m {
			m = ax
		}
	}
	return m
}

// Round returns score rounded to two decimal places, always within [0, 1].
func Round(score float64) float64 {
	return clamp(math.Round(clamp(score)*100) / 100)
}

// Format renders score as its two-decimal presentation value, e.g. "0.79".
func Format(score float64) string {
	return fmt.Sprintf("%.2f", Round(score))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
