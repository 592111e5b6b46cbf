package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/integrators"
	"github.com/san-kum/sympend/internal/physics"
)

// DivergenceResult compares a run with a copy whose first angle is nudged.
type DivergenceResult struct {
	Times      []float64
	Separation []float64
	// Lyapunov is the slope of ln(separation) against time, fitted over the
	// samples before the separation saturates.
	Lyapunov float64
}

// saturation is the phase-space distance past which two runs are treated as
// unrelated.
const saturation = 1.0

// Divergence integrates init and init with Angle1 shifted by perturbation and
// records their phase-space separation at every common finite sample.
func Divergence(p physics.Params, init physics.InitialState, perturbation float64, n int, dt float64) (*DivergenceResult, error) {
	if !(perturbation > 0) || math.IsInf(perturbation, 0) {
		return nil, errors.New("perturbation must be a positive finite number")
	}

	base, err := integrators.Integrate(p, init, n, dt)
	if err != nil && !errors.Is(err, dynamo.ErrNumericalDivergence) {
		return nil, err
	}
	shifted := init
	shifted.Angle1 += perturbation
	other, err := integrators.Integrate(p, shifted, n, dt)
	if err != nil && !errors.Is(err, dynamo.ErrNumericalDivergence) {
		return nil, err
	}

	m := min(base.Len(), other.Len())
	res := &DivergenceResult{
		Times:      make([]float64, 0, m),
		Separation: make([]float64, 0, m),
	}
	var xs, ys []float64
	growing := true
	for i := 0; i < m && base.Finite(i) && other.Finite(i); i++ {
		sep := other.State(i).Sub(base.State(i)).Norm()
		res.Times = append(res.Times, base.Time(i))
		res.Separation = append(res.Separation, sep)

		if sep >= saturation {
			growing = false
		}
		if growing && sep > 0 {
			xs = append(xs, base.Time(i))
			ys = append(ys, math.Log(sep/perturbation))
		}
	}

	if len(xs) >= 2 {
		_, res.Lyapunov = stat.LinearRegression(xs, ys, nil, false)
	}
	return res, nil
}
