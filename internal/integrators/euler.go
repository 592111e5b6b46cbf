package integrators

import "github.com/san-kum/sympend/internal/dynamo"

// Euler is the explicit first-order scheme x' = x + dt f(x). It is not
// symplectic and is kept as the baseline for energy comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
