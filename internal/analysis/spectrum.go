package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/cglsim/internal/cgl"
)

// PowerSpectrum returns the one-sided power spectrum of a real time series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeffs := fourier.NewFFT(len(data)).Coefficients(nil, data)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		a := cmplx.Abs(c)
		ps[i] = a * a
	}
	return ps
}

// DominantFrequency picks the strongest non-DC bin and converts its index
// to a frequency in Hz given the total sampled duration.
func DominantFrequency(power []float64, duration float64) float64 {
	if len(power) < 2 || duration <= 0 {
		return 0
	}
	maxIdx := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[maxIdx] {
			maxIdx = i
		}
	}
	return float64(maxIdx) / duration
}

// SpatialSpectrum computes the 2D spatial power spectrum |FFT2(A)|² of a
// single frame, shifted so the zero wavenumber sits at the grid center.
func SpatialSpectrum(f cgl.Field) [][]float64 {
	n := f.Size()
	rows := make([][]complex128, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			rows[i][j] = f.At(i, j)
		}
	}

	freq := fft.FFT2(rows)

	power := make([][]float64, n)
	half := n / 2
	for i := 0; i < n; i++ {
		power[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			// fftshift: move the zero-wavenumber bin to (half, half).
			si, sj := (i+half)%n, (j+half)%n
			a := cmplx.Abs(freq[i][j])
			power[si][sj] = a * a
		}
	}
	return power
}

// RadialSpectrum collapses a spatial power spectrum into mean power per
// integer wavenumber ring, useful for terminal plotting.
func RadialSpectrum(power [][]float64) []float64 {
	n := len(power)
	if n == 0 {
		return nil
	}
	half := n / 2
	sums := make([]float64, half+1)
	counts := make([]int, half+1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			di, dj := i-half, j-half
			k := isqrt(di*di + dj*dj)
			if k > half {
				continue
			}
			sums[k] += power[i][j]
			counts[k]++
		}
	}
	out := make([]float64, half+1)
	for k := range out {
		if counts[k] > 0 {
			out[k] = sums[k] / float64(counts[k])
		}
	}
	return out
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	k := 0
	for (k+1)*(k+1) <= v {
		k++
	}
	return k
}
