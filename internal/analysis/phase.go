package analysis

import (
	"math/cmplx"

	"github.com/san-kum/cglsim/internal/cgl"
)

// PhaseField extracts arg(A) per cell, in (-π, π].
func PhaseField(f cgl.Field) [][]float64 {
	n := f.Size()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = cmplx.Phase(f.At(i, j))
		}
	}
	return out
}

// RealField extracts Re(A) per cell.
func RealField(f cgl.Field) [][]float64 {
	n := f.Size()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = real(f.At(i, j))
		}
	}
	return out
}

// AmplitudeField extracts |A| per cell.
func AmplitudeField(f cgl.Field) [][]float64 {
	n := f.Size()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = cmplx.Abs(f.At(i, j))
		}
	}
	return out
}
