package physics

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/cglsim/internal/cgl"
)

// CGL implements the two-dimensional complex Ginzburg-Landau equation on a
// periodic n×n grid:
//
//	dA/dt = A + (1+iα)·∇²A − (1+iβ)·|A|²·A
//
// with the Laplacian discretized by the 5-point periodic stencil. Alpha is
// the linear dispersion coefficient, Beta the nonlinear one. No stability
// bound on the caller's dt is enforced; a dt too large for the stencil
// simply diverges through NaN/Inf frames.
type CGL struct {
	N           int
	Alpha, Beta float64
	Dx          float64
}

func NewCGL(n int, alpha, beta, dx float64) *CGL {
	return &CGL{N: n, Alpha: alpha, Beta: beta, Dx: dx}
}

func (c *CGL) GridSize() int { return c.N }

func (c *CGL) Derivative(f cgl.Field, _ float64) cgl.Field {
	lap := f.Laplacian(c.Dx)
	diffusion := complex(1, c.Alpha)
	saturation := complex(1, c.Beta)

	result := cgl.NewField(c.N)
	src := f.Data()
	lapData := lap.Data()
	out := result.Data()
	for i, a := range src {
		re, im := real(a), imag(a)
		out[i] = a + diffusion*lapData[i] - saturation*complex(re*re+im*im, 0)*a
	}
	return result
}

func (c *CGL) GetParams() map[string]float64 {
	return map[string]float64{"alpha": c.Alpha, "beta": c.Beta, "dx": c.Dx}
}

func (c *CGL) SetParam(name string, v float64) error {
	switch name {
	case "alpha":
		c.Alpha = v
	case "beta":
		c.Beta = v
	case "dx":
		if v <= 0 {
			return fmt.Errorf("dx must be positive, got %f", v)
		}
		c.Dx = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// NoiseField builds the standard initial condition: uniform real noise in
// [-amp, amp) with zero imaginary part, drawn from a PRNG seeded with seed.
func NoiseField(n int, amp float64, seed int64) cgl.Field {
	rng := rand.New(rand.NewSource(seed))
	f := cgl.NewField(n)
	data := f.Data()
	for i := range data {
		data[i] = complex(amp*(2*rng.Float64()-1), 0)
	}
	return f
}
