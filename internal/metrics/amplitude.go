package metrics

import (
	"math/cmplx"

	"github.com/san-kum/cglsim/internal/cgl"
)

// MaxAmplitude tracks the largest |A| seen over the whole run.
type MaxAmplitude struct {
	name string
	max  float64
}

func NewMaxAmplitude() *MaxAmplitude {
	return &MaxAmplitude{name: "max_amplitude"}
}

func (m *MaxAmplitude) Name() string { return m.name }

func (m *MaxAmplitude) Observe(f cgl.Field, t float64) {
	for _, v := range f.Data() {
		if a := cmplx.Abs(v); a > m.max {
			m.max = a
		}
	}
}

func (m *MaxAmplitude) Value() float64 { return m.max }

func (m *MaxAmplitude) Reset() { m.max = 0 }

// MeanIntensity averages the per-frame mean |A|² over all observed frames.
type MeanIntensity struct {
	name    string
	total   float64
	samples int
}

func NewMeanIntensity() *MeanIntensity {
	return &MeanIntensity{name: "mean_intensity"}
}

func (m *MeanIntensity) Name() string { return m.name }

func (m *MeanIntensity) Observe(f cgl.Field, t float64) {
	m.total += FrameIntensity(f)
	m.samples++
}

func (m *MeanIntensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanIntensity) Reset() {
	m.total = 0
	m.samples = 0
}

// FrameIntensity returns the mean |A|² of a single frame.
func FrameIntensity(f cgl.Field) float64 {
	sum := 0.0
	for _, v := range f.Data() {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return sum / float64(len(f.Data()))
}

// FrameMaxAmplitude returns the largest |A| of a single frame.
func FrameMaxAmplitude(f cgl.Field) float64 {
	max := 0.0
	for _, v := range f.Data() {
		if a := cmplx.Abs(v); a > max {
			max = a
		}
	}
	return max
}
