// Package physics models the planar double pendulum in canonical coordinates.
//
// The phase-space state is two generalized angles and their conjugate
// momenta. The package provides:
//
//   - [Params] and [InitialState]: validated physical inputs
//   - [Trajectory]: the fixed-length sample buffer produced by an integrator
//   - [MomentumDerivative] and [CoordinateDerivative]: the update terms of
//     the staggered scheme, evaluated against a trajectory at a sample index
//   - [CoordinateTransform]: Cartesian positions of both bobs
//   - [DoublePendulum]: the same Hamiltonian as a [dynamo.Canonical] system,
//     driven by the exact gradient [GradientForceAt]
//
// Angles are measured from the downward vertical, so the rest state is
// (0, 0) and y grows upward:
//
//	x1 = l1 sin a1          y1 = -l1 cos a1
//	x2 = x1 + l2 sin a2     y2 = y1 - l2 cos a2
//
// # Energy
//
// The Hamiltonian with E = m1 + m2 sin²(q1-q2) is
//
//	H = (m2 l2² p1² + (m1+m2) l1² p2² - 2 m2 l1 l2 p1 p2 cos(q1-q2)) / (2 m2 l1² l2² E)
//	    - (m1+m2) g l1 cos q1 - m2 g l2 cos q2
//
// and is returned by [Energy]. The momentum update of the staggered scheme,
// [ForceAt], differs from -dH/dq in its sin 2(q1-q2) term, so the scheme is
// not symplectic for this H. Near rest the difference is second order in the
// momenta and the energy stays within a small band of its initial value
// (about 0.2% at 0.3 rad over 1000 samples). Large swings drift much further.
package physics
