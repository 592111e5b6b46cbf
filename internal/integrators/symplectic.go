package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/physics"
)

// Integrate runs the staggered symplectic Euler recurrence for n samples of
// spacing dt, starting from init at rest:
//
//	q[i+1] = q[i] + dt * dH/dp(q[i],   p[i])
//	p[i+1] = p[i] + dt * F(q[i+1], p[i])
//
// where F is [physics.ForceAt].
//
// If a sample turns NaN or Inf the run stops there. The returned trajectory
// then ends at the offending sample and the error is a *dynamo.DivergenceError.
func Integrate(p physics.Params, init physics.InitialState, n int, dt float64) (*physics.Trajectory, error) {
	if err := validateStep(n, dt); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := physics.NewInitialState(init.Angle1, init.Angle2); err != nil {
		return nil, err
	}

	tr := physics.NewTrajectory(init, n, dt)
	for i := 0; i < n-1; i++ {
		hp1, hp2 := physics.MomentumDerivative(tr, i, p)
		tr.Angle1[i+1] = tr.Angle1[i] + dt*hp1
		tr.Angle2[i+1] = tr.Angle2[i] + dt*hp2

		hq1, hq2 := physics.CoordinateDerivative(tr, i, p)
		tr.Momentum1[i+1] = tr.Momentum1[i] + dt*hq1
		tr.Momentum2[i+1] = tr.Momentum2[i] + dt*hq2

		if !tr.Finite(i + 1) {
			tr.Truncate(i + 1)
			return tr, &dynamo.DivergenceError{Step: i + 1, Time: tr.Time(i + 1), State: tr.State(i + 1)}
		}
	}
	return tr, nil
}

func validateStep(n int, dt float64) error {
	if n < 2 {
		return fmt.Errorf("need at least 2 samples, got %d: %w", n, dynamo.ErrInvalidStep)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("dt = %v: %w", dt, dynamo.ErrInvalidStep)
	}
	return nil
}

// SymplecticEuler applies the update order of Integrate to any system. The
// state is split in half: coordinates first, momenta second. The momenta
// follow the system's own Force, which for a physics.DoublePendulum is the
// exact gradient.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

// Step updates the coordinates with the velocity at x, then the momenta with
// the force at the updated coordinates. Systems that do not implement
// dynamo.Canonical are split through Derive.
func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k := len(x) / 2
	next := x.Clone()

	var v dynamo.State
	if c, ok := dyn.(dynamo.Canonical); ok {
		v = c.Velocity(x)
	} else {
		v = dyn.Derive(x, t)[:k]
	}
	for i := 0; i < k; i++ {
		next[i] = x[i] + dt*v[i]
	}

	var f dynamo.State
	if c, ok := dyn.(dynamo.Canonical); ok {
		f = c.Force(next)
	} else {
		f = dyn.Derive(next, t)[k:]
	}
	for i := 0; i < k; i++ {
		next[k+i] = x[k+i] + dt*f[i]
	}
	return next
}
