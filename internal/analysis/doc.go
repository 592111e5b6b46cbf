// Package analysis characterises recorded double pendulum runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of an angle series
//   - [NewPhasePortrait] and [PhasePortraitToASCII]: terminal phase plots
//   - [PoincareSection]: (angle2, momentum2) each time angle1 rises through zero
//   - [Divergence]: separation of two nearby runs and a finite-time
//     Lyapunov estimate
//   - [BifurcationDiagram]: Poincaré values across a parameter sweep
//
// # Chaos Detection
//
// A clearly positive exponent indicates sensitive dependence on the initial
// angles:
//
//	res, err := analysis.Divergence(p, init, 1e-8, 1000, 0.02)
//	if err == nil && res.Lyapunov > 0 {
//	    // chaotic regime
//	}
package analysis
