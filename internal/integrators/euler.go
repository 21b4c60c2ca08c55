package integrators

import "github.com/san-kum/cglsim/internal/cgl"

// Euler is the explicit forward-Euler scheme: A' = A + dt·F(A, t). This is
// the reference scheme for the CGLe run; choosing a stable dt is the
// caller's responsibility.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys cgl.System, f cgl.Field, t float64, dt float64) cgl.Field {
	df := sys.Derivative(f, t)
	return f.AddScaled(df, dt)
}
