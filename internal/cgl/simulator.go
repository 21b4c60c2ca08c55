package cgl

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances f0 for round(Duration/Dt) fixed steps, retaining every frame
// including the initial one. The loop is driven by an integer step count, so
// the series length is exactly steps+1 regardless of floating-point drift.
func (s *Simulator) Run(ctx context.Context, f0 Field, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if f0.Size() != s.sys.GridSize() {
		return nil, fmt.Errorf("%w: field is %d, system wants %d", ErrGridMismatch, f0.Size(), s.sys.GridSize())
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Fields:  make([]Field, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	f := f0.Clone()
	t := 0.0

	result.Fields = append(result.Fields, f)
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(f, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(f, t)
		}

		next := s.integrator.Step(s.sys, f, t, cfg.Dt)

		if cfg.ValidateState && !next.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid field (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		f = next
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		result.Fields = append(result.Fields, f)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		m.Observe(f, t)
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

// RunWithCallback steps without retaining history; the callback sees every
// frame and returns false to stop early. Used by the live terminal view.
func (s *Simulator) RunWithCallback(ctx context.Context, f0 Field, cfg Config, callback func(Field, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	if f0.Size() != s.sys.GridSize() {
		return fmt.Errorf("%w: field is %d, system wants %d", ErrGridMismatch, f0.Size(), s.sys.GridSize())
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	f := f0.Clone()

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		if !callback(f, t) {
			return nil
		}
		if i == steps {
			break
		}

		f = s.integrator.Step(s.sys, f, t, cfg.Dt)

		if cfg.ValidateState && !f.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t+cfg.Dt)
		}
	}

	return nil
}
