package integrators

import "github.com/san-kum/sympend/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme. It keeps no state
// between steps.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := dt / 2

	k1 := dyn.Derive(x, t)
	k2 := dyn.Derive(x.AddScaled(half, k1), t+half)
	k3 := dyn.Derive(x.AddScaled(half, k2), t+half)
	k4 := dyn.Derive(x.AddScaled(dt, k3), t+dt)

	return x.AddScaled(dt/6, k1).AddScaled(dt/3, k2).AddScaled(dt/3, k3).AddScaled(dt/6, k4)
}
