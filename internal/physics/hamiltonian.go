package physics

import "math"

// inertia returns D = l1 l2 (m1 + m2 sin²δ), the determinant shared by every
// kinetic term.
func inertia(delta float64, p Params) float64 {
	s := math.Sin(delta)
	return p.Length1 * p.Length2 * (p.Mass1 + p.Mass2*s*s)
}

// VelocityAt returns (dH/dp1, dH/dp2), the angular velocities at a state.
func VelocityAt(q1, q2, p1, p2 float64, p Params) (float64, float64) {
	delta := q1 - q2
	c := math.Cos(delta)
	d := inertia(delta, p)

	w1 := (p.Length2*p1 - p.Length1*p2*c) / (p.Length1 * d)
	w2 := ((p.Mass1+p.Mass2)*p.Length1*p2 - p.Mass2*p.Length2*p1*c) / (p.Length2 * p.Mass2 * d)
	return w1, w2
}

// ForceAt is the momentum update term of the staggered scheme. The gravity
// and coupling parts are -dH/dq; the sin 2δ part carries p1 to the first
// power and is scaled by 1/(2 l1 l2 D²), so it is not the exact gradient.
// Use GradientForceAt when the true Hamiltonian force is needed.
func ForceAt(q1, q2, p1, p2 float64, p Params) (float64, float64) {
	delta := q1 - q2
	d := inertia(delta, p)

	tau1, tau2 := gravityTorque(q1, q2, p)
	c := p1 * p2 * math.Sin(delta) / d

	num := p.Mass2*p.Length2*p.Length2*p1 +
		(p.Mass1+p.Mass2)*p.Length1*p.Length1*p2*p2 -
		2*p.Mass2*p.Length1*p.Length2*p1*p2*math.Cos(delta)
	s := num * math.Sin(2*delta) / (2 * p.Length1 * p.Length2 * d * d)

	return tau1 - c + s, tau2 + c - s
}

// GradientForceAt returns (-dH/dq1, -dH/dq2), the generalized forces at a
// state.
func GradientForceAt(q1, q2, p1, p2 float64, p Params) (float64, float64) {
	delta := q1 - q2
	d := inertia(delta, p)

	tau1, tau2 := gravityTorque(q1, q2, p)
	c := p1 * p2 * math.Sin(delta) / d
	s := kineticNumerator(delta, p1, p2, p) * math.Sin(2*delta) / (2 * d * d)

	return tau1 - c + s, tau2 + c - s
}

func gravityTorque(q1, q2 float64, p Params) (float64, float64) {
	return -(p.Mass1 + p.Mass2) * p.Gravity * p.Length1 * math.Sin(q1),
		-p.Mass2 * p.Gravity * p.Length2 * math.Sin(q2)
}

// MomentumDerivative evaluates dH/dp at sample i of tr: both angles and both
// momenta are read at index i.
func MomentumDerivative(tr *Trajectory, i int, p Params) (float64, float64) {
	return VelocityAt(tr.Angle1[i], tr.Angle2[i], tr.Momentum1[i], tr.Momentum2[i], p)
}

// CoordinateDerivative evaluates [ForceAt] with the angles at sample i+1 and
// the momenta at sample i. The angles at i+1 must already be written.
func CoordinateDerivative(tr *Trajectory, i int, p Params) (float64, float64) {
	return ForceAt(tr.Angle1[i+1], tr.Angle2[i+1], tr.Momentum1[i], tr.Momentum2[i], p)
}

// Energy is the Hamiltonian at a state.
func Energy(q1, q2, p1, p2 float64, params Params) float64 {
	delta := q1 - q2
	kinetic := kineticNumerator(delta, p1, p2, params) /
		(2 * params.Mass2 * params.Length1 * params.Length2 * inertia(delta, params))
	potential := -(params.Mass1+params.Mass2)*params.Gravity*params.Length1*math.Cos(q1) -
		params.Mass2*params.Gravity*params.Length2*math.Cos(q2)
	return kinetic + potential
}

func kineticNumerator(delta, p1, p2 float64, p Params) float64 {
	return p.Mass2*p.Length2*p.Length2*p1*p1 +
		(p.Mass1+p.Mass2)*p.Length1*p.Length1*p2*p2 -
		2*p.Mass2*p.Length1*p.Length2*p1*p2*math.Cos(delta)
}
