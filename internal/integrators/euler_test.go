package integrators

import (
	"testing"

	"github.com/san-kum/cglsim/internal/cgl"
)

// decaySystem is dA/dt = -A, exact solution A(t) = A(0)·e^{-t}.
type decaySystem struct{ n int }

func (d *decaySystem) Derivative(f cgl.Field, _ float64) cgl.Field {
	out := cgl.NewField(d.n)
	data := out.Data()
	for i, v := range f.Data() {
		data[i] = -v
	}
	return out
}

func (d *decaySystem) GridSize() int { return d.n }

func TestEulerStep(t *testing.T) {
	dyn := &decaySystem{n: 2}
	integ := NewEuler()

	f := cgl.NewField(2)
	f.Set(0, 0, complex(2, -1))

	next := integ.Step(dyn, f, 0, 0.25)

	// A' = A + dt·(-A) = 0.75·A
	want := complex(2, -1) * complex(0.75, 0)
	if got := next.At(0, 0); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if next.At(1, 1) != 0 {
		t.Error("zero cells must stay zero")
	}
}

func TestEulerDoesNotMutateInput(t *testing.T) {
	dyn := &decaySystem{n: 2}
	integ := NewEuler()

	f := cgl.NewField(2)
	f.Set(0, 0, complex(1, 1))
	integ.Step(dyn, f, 0, 0.1)

	if f.At(0, 0) != complex(1, 1) {
		t.Error("Step must not mutate the input field")
	}
}
