package cgl

import "fmt"

// System describes a spatially discretized PDE of the form dA/dt = F(A, t)
// over an n×n complex field.
type System interface {
	Derivative(f Field, t float64) Field
	GridSize() int
}

type Integrator interface {
	Step(sys System, f Field, t float64, dt float64) Field
}

type Metric interface {
	Name() string
	Observe(f Field, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Field, t float64)
}

// Configurable systems expose runtime-tunable parameters for the live view.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.05,
		Duration:      50.0,
		ValidateState: false,
	}
}

// Result holds the full time history of a run. Fields[0] is the initial
// condition; Fields[k] is the state after k steps.
type Result struct {
	Fields     []Field
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
