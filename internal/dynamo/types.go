package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a phase-space sample laid out as {q1, q2, p1, p2}.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddScaled returns s + alpha*k as a new State.
func (s State) AddScaled(alpha float64, k State) State {
	return floats.AddScaledTo(make(State, len(s)), s, alpha, k)
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Canonical is a Hamiltonian system whose right-hand side splits into a
// coordinate half (dq/dt = dH/dp) and a momentum half (dp/dt = -dH/dq).
// Both halves return a vector the size of the coordinate block.
type Canonical interface {
	System
	Velocity(x State) State
	Force(x State) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Configurable exposes named physical constants for parameter sweeps.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
