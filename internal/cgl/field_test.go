package cgl

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestLaplacianShape(t *testing.T) {
	for _, n := range []int{1, 2, 4, 16} {
		f := NewField(n)
		lap := f.Laplacian(1.0)
		if lap.Size() != n {
			t.Errorf("n=%d: expected size %d, got %d", n, n, lap.Size())
		}
		if len(lap.Data()) != n*n {
			t.Errorf("n=%d: expected %d cells, got %d", n, n*n, len(lap.Data()))
		}
	}
}

func TestLaplacianConstantField(t *testing.T) {
	n := 8
	f := NewField(n)
	c := complex(0.7, -1.3)
	for i := range f.Data() {
		f.Data()[i] = c
	}

	lap := f.Laplacian(0.5)
	for i, v := range lap.Data() {
		if v != 0 {
			t.Fatalf("cell %d: constant field should have zero laplacian, got %v", i, v)
		}
	}
}

func TestLaplacianSingleSpike(t *testing.T) {
	// One nonzero entry at (0,0); the stencil must hit the periodic
	// neighbors (0,1), (0,3), (1,0), (3,0) and the center with weight -4.
	n := 4
	f := NewField(n)
	f.Set(0, 0, 1)

	lap := f.Laplacian(1.0)

	expected := map[[2]int]complex128{
		{0, 0}: -4,
		{0, 1}: 1,
		{0, 3}: 1,
		{1, 0}: 1,
		{3, 0}: 1,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := expected[[2]int{i, j}]
			if got := lap.At(i, j); got != want {
				t.Errorf("(%d,%d): expected %v, got %v", i, j, want, got)
			}
		}
	}
}

func TestLaplacianGridSpacing(t *testing.T) {
	n := 4
	f := NewField(n)
	f.Set(1, 1, complex(2, 0))

	lap1 := f.Laplacian(1.0)
	lap2 := f.Laplacian(2.0)

	for i := range lap1.Data() {
		if lap2.Data()[i] != lap1.Data()[i]/4 {
			t.Fatalf("cell %d: dx=2 should scale by 1/4: %v vs %v", i, lap2.Data()[i], lap1.Data()[i])
		}
	}
}

func TestLaplacianShiftInvariance(t *testing.T) {
	n := 6
	f := NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f.Set(i, j, complex(float64(i)*0.3-float64(j)*0.7, float64(i*j)*0.1))
		}
	}

	shift := func(g Field, di, dj int) Field {
		out := NewField(n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out.Set((i+di)%n, (j+dj)%n, g.At(i, j))
			}
		}
		return out
	}

	for _, offset := range [][2]int{{1, 0}, {0, 1}, {3, 2}, {5, 5}} {
		di, dj := offset[0], offset[1]
		shiftedLap := shift(f.Laplacian(1.0), di, dj)
		lapShifted := shift(f, di, dj).Laplacian(1.0)
		for i := range shiftedLap.Data() {
			if shiftedLap.Data()[i] != lapShifted.Data()[i] {
				t.Fatalf("shift (%d,%d) cell %d: %v vs %v", di, dj, i, shiftedLap.Data()[i], lapShifted.Data()[i])
			}
		}
	}
}

func TestFieldClone(t *testing.T) {
	f := NewField(3)
	f.Set(1, 2, complex(1, 1))

	c := f.Clone()
	c.Set(1, 2, complex(9, 9))

	if f.At(1, 2) != complex(1, 1) {
		t.Error("mutating a clone should not touch the original")
	}
}

func TestFieldIsValid(t *testing.T) {
	f := NewField(2)
	if !f.IsValid() {
		t.Error("zero field should be valid")
	}

	f.Set(0, 1, complex(math.NaN(), 0))
	if f.IsValid() {
		t.Error("field with NaN should be invalid")
	}

	g := NewField(2)
	g.Set(1, 1, complex(0, math.Inf(1)))
	if g.IsValid() {
		t.Error("field with Inf should be invalid")
	}
}

func TestFieldNorm(t *testing.T) {
	f := NewField(2)
	f.Set(0, 0, complex(3, 4))

	if got := f.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %f", got)
	}
}

func TestFieldAddScaled(t *testing.T) {
	f := NewField(2)
	g := NewField(2)
	f.Set(0, 0, complex(1, 1))
	g.Set(0, 0, complex(2, -4))

	r := f.AddScaled(g, 0.5)
	want := complex(2, -1)
	if r.At(0, 0) != want {
		t.Errorf("expected %v, got %v", want, r.At(0, 0))
	}
	if f.At(0, 0) != complex(1, 1) {
		t.Error("AddScaled must not mutate the receiver")
	}
}

func TestFieldAt(t *testing.T) {
	f := NewField(3)
	f.Data()[1*3+2] = complex(5, 0)

	if cmplx.Abs(f.At(1, 2)-complex(5, 0)) > 0 {
		t.Error("At should read row-major layout")
	}
}
