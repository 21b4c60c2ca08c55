package integrators

import "github.com/san-kum/cglsim/internal/cgl"

// RK4 is the classical fourth-order Runge-Kutta scheme over complex fields.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys cgl.System, f cgl.Field, t, dt float64) cgl.Field {
	k1 := sys.Derivative(f, t)
	k2 := sys.Derivative(f.AddScaled(k1, dt*0.5), t+dt*0.5)
	k3 := sys.Derivative(f.AddScaled(k2, dt*0.5), t+dt*0.5)
	k4 := sys.Derivative(f.AddScaled(k3, dt), t+dt)

	result := cgl.NewField(f.Size())
	out := result.Data()
	src := f.Data()
	a, b, c, d := k1.Data(), k2.Data(), k3.Data(), k4.Data()
	dt6 := complex(dt/6.0, 0)
	for i := range src {
		out[i] = src[i] + dt6*(a[i]+2*b[i]+2*c[i]+d[i])
	}
	return result
}
