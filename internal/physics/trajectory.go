package physics

import (
	"math"

	"github.com/san-kum/sympend/internal/dynamo"
)

// Trajectory is the sampled phase-space path of one run. All four slices
// have the same length; sample i sits at time i*Dt.
type Trajectory struct {
	Angle1    []float64
	Angle2    []float64
	Momentum1 []float64
	Momentum2 []float64
	Dt        float64
}

// NewTrajectory allocates n samples and seeds sample 0 from init with zero
// momenta.
func NewTrajectory(init InitialState, n int, dt float64) *Trajectory {
	tr := &Trajectory{
		Angle1:    make([]float64, n),
		Angle2:    make([]float64, n),
		Momentum1: make([]float64, n),
		Momentum2: make([]float64, n),
		Dt:        dt,
	}
	if n > 0 {
		tr.Angle1[0] = init.Angle1
		tr.Angle2[0] = init.Angle2
	}
	return tr
}

func (tr *Trajectory) Len() int {
	return len(tr.Angle1)
}

// Horizon is the nominal duration N*Dt.
func (tr *Trajectory) Horizon() float64 {
	return float64(tr.Len()) * tr.Dt
}

func (tr *Trajectory) Time(i int) float64 {
	return float64(i) * tr.Dt
}

// State returns sample i as {q1, q2, p1, p2}.
func (tr *Trajectory) State(i int) dynamo.State {
	return dynamo.State{tr.Angle1[i], tr.Angle2[i], tr.Momentum1[i], tr.Momentum2[i]}
}

// SetState writes x into sample i.
func (tr *Trajectory) SetState(i int, x dynamo.State) {
	tr.Angle1[i] = x[0]
	tr.Angle2[i] = x[1]
	tr.Momentum1[i] = x[2]
	tr.Momentum2[i] = x[3]
}

func (tr *Trajectory) Finite(i int) bool {
	return finite(tr.Angle1[i]) && finite(tr.Angle2[i]) &&
		finite(tr.Momentum1[i]) && finite(tr.Momentum2[i])
}

// FirstNonFinite returns the index of the first sample holding NaN or Inf,
// or -1.
func (tr *Trajectory) FirstNonFinite() int {
	for i := 0; i < tr.Len(); i++ {
		if !tr.Finite(i) {
			return i
		}
	}
	return -1
}

// Truncate drops every sample after index last.
func (tr *Trajectory) Truncate(last int) {
	n := last + 1
	tr.Angle1 = tr.Angle1[:n]
	tr.Angle2 = tr.Angle2[:n]
	tr.Momentum1 = tr.Momentum1[:n]
	tr.Momentum2 = tr.Momentum2[:n]
}

// Energies evaluates the Hamiltonian at every sample.
func (tr *Trajectory) Energies(p Params) []float64 {
	out := make([]float64, tr.Len())
	for i := range out {
		out[i] = Energy(tr.Angle1[i], tr.Angle2[i], tr.Momentum1[i], tr.Momentum2[i], p)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
