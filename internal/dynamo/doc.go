// Package dynamo provides the shared primitives of the pendulum lab.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [State]: phase-space vector {angle1, angle2, momentum1, momentum2}
//   - [System]: right-hand side of a first-order ODE (dX/dt = f(X, t))
//   - [Canonical]: a Hamiltonian system split into velocity and force halves
//   - [Integrator]: single-step numerical integrator
//   - [Metric]: streaming observer over trajectory samples
//   - [Configurable]: named parameters for sweeps
//
// # Errors
//
// Failures are reported with the sentinel errors in errors.go. Numerical
// blow-ups carry their position as a [DivergenceError]:
//
//	tr, err := integrators.Integrate(p, init, n, dt)
//	var div *dynamo.DivergenceError
//	if errors.As(err, &div) {
//	    // tr holds samples [0, div.Step]
//	}
//
// # Thread Safety
//
// Values in this package carry no locks. A trajectory is owned by the
// integrator until Integrate returns and is read-only afterwards.
package dynamo
