// Package cgl provides core primitives for explicit time integration of a
// complex field on a periodic 2D grid.
//
// The package defines the fundamental types for the simulation:
//
//   - [Field]: n×n complex-valued grid with periodic index arithmetic
//   - [System]: interface for the spatial right-hand side (dA/dt = F(A, t))
//   - [Integrator]: fixed-step time integration scheme
//   - [Simulator]: orchestrates a run and accumulates the frame history
//
// # Example
//
//	sys := physics.NewCGL(64, 0.0, 1.5, 1.0)
//	integ := integrators.NewEuler()
//	sim := cgl.New(sys, integ)
//	result, _ := sim.Run(ctx, f0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Each independent run needs its
// own Simulator.
package cgl
