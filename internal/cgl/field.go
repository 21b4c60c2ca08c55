package cgl

import (
	"math"
	"math/cmplx"
)

// Field is an n×n complex-valued grid stored row-major.
type Field struct {
	n    int
	data []complex128
}

func NewField(n int) Field {
	return Field{n: n, data: make([]complex128, n*n)}
}

// Size returns the grid side length n.
func (f Field) Size() int { return f.n }

// Data exposes the row-major backing slice. Index (i,j) lives at i*n+j.
func (f Field) Data() []complex128 { return f.data }

func (f Field) At(i, j int) complex128 { return f.data[i*f.n+j] }

func (f Field) Set(i, j int, v complex128) { f.data[i*f.n+j] = v }

func (f Field) Clone() Field {
	c := Field{n: f.n, data: make([]complex128, len(f.data))}
	copy(c.data, f.data)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Norm returns the L2 norm over all grid cells.
func (f Field) Norm() float64 {
	sum := 0.0
	for _, v := range f.data {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}

// AddScaled returns f + s*g elementwise. Panics on mismatched grids are
// left to the runtime; fields within one run always share a shape.
func (f Field) AddScaled(g Field, s float64) Field {
	result := Field{n: f.n, data: make([]complex128, len(f.data))}
	sc := complex(s, 0)
	for i, v := range f.data {
		result.data[i] = v + sc*g.data[i]
	}
	return result
}

// Laplacian returns the discrete 5-point Laplacian of f under periodic
// boundary conditions:
//
//	(f(i+1,j) + f(i-1,j) + f(i,j+1) + f(i,j-1) - 4*f(i,j)) / dx²
//
// Indices wrap modulo n in both axes. The input is not modified.
func (f Field) Laplacian(dx float64) Field {
	n := f.n
	result := Field{n: n, data: make([]complex128, len(f.data))}
	inv := complex(1.0/(dx*dx), 0)
	for i := 0; i < n; i++ {
		up := ((i-1+n)%n)*n
		down := ((i+1)%n)*n
		row := i * n
		for j := 0; j < n; j++ {
			left := (j - 1 + n) % n
			right := (j + 1) % n
			sum := f.data[up+j] + f.data[down+j] + f.data[row+left] + f.data[row+right] - 4*f.data[row+j]
			result.data[row+j] = sum * inv
		}
	}
	return result
}
