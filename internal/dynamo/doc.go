// Package dynamo provides the ODE primitives the solver is built on.
//
// The package defines:
//
//   - [State]: real state vector
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator], [AdaptiveIntegrator]: single-step integrator interfaces
//   - [Simulator]: drives an integrator across an output time grid
//
// # Example
//
//	sim := dynamo.New(integrators.NewRK45())
//	err := sim.Integrate(ctx, sys, x0, tlist, dynamo.DefaultConfig(), func(i int, t float64, x dynamo.State) {
//	    record(i, x)
//	})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are integrators with
// scratch buffers. Use one Simulator per goroutine.
package dynamo
