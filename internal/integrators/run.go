package integrators

import (
	"fmt"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/physics"
)

// Run drives any single-step integrator over a four-dimensional canonical
// system and records the samples in a Trajectory, with the same step and
// divergence rules as Integrate.
func Run(stepper dynamo.Integrator, dyn dynamo.System, x0 dynamo.State, n int, dt float64) (*physics.Trajectory, error) {
	if err := validateStep(n, dt); err != nil {
		return nil, err
	}
	if dyn.StateDim() != 4 || len(x0) != 4 {
		return nil, fmt.Errorf("state dimension %d, want 4: %w", len(x0), dynamo.ErrInvalidParameters)
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("initial state %v: %w", x0, dynamo.ErrInvalidParameters)
	}

	tr := physics.NewTrajectory(physics.InitialState{}, n, dt)
	tr.SetState(0, x0)

	x := x0.Clone()
	for i := 0; i < n-1; i++ {
		x = stepper.Step(dyn, x, tr.Time(i), dt)
		tr.SetState(i+1, x)
		if !x.IsValid() {
			tr.Truncate(i + 1)
			return tr, &dynamo.DivergenceError{Step: i + 1, Time: tr.Time(i + 1), State: x.Clone()}
		}
	}
	return tr, nil
}
