package analysis

import (
	"fmt"

	"github.com/san-kum/sympend/internal/dynamo"
)

// BifurcationPoint holds the Poincaré values seen for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationDiagram sweeps paramName over [paramMin, paramMax] and, for each
// value, records the coordinate at stateIndex each time state[0] rises through
// zero after the transient. The system's original parameter is restored
// before returning.
func BifurcationDiagram(
	dyn dynamo.System,
	integ dynamo.Integrator,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	stateIndex int,
	x0 dynamo.State,
	dt, transient, record float64,
) ([]BifurcationPoint, error) {
	tunable, ok := dyn.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("system does not expose parameters")
	}
	original, ok := tunable.GetParams()[paramName]
	if !ok {
		return nil, fmt.Errorf("unknown param: %s", paramName)
	}
	if stateIndex < 0 || stateIndex >= len(x0) {
		return nil, fmt.Errorf("state index %d out of range", stateIndex)
	}
	defer tunable.SetParam(paramName, original)

	if paramSteps < 2 {
		paramSteps = 2
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		if err := tunable.SetParam(paramName, param); err != nil {
			return nil, err
		}

		x := x0.Clone()
		t := 0.0
		for t < transient && x.IsValid() {
			x = integ.Step(dyn, x, t, dt)
			t += dt
		}

		values := make([]float64, 0, 64)
		for t < transient+record && x.IsValid() {
			next := integ.Step(dyn, x, t, dt)
			t += dt
			if x[0] < 0 && next[0] >= 0 && next.IsValid() {
				frac := -x[0] / (next[0] - x[0])
				values = append(values, x[stateIndex]+frac*(next[stateIndex]-x[stateIndex]))
			}
			x = next
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// BifurcationToASCII plots every recorded value against its parameter.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	points := make([]Point, 0, len(data))
	for _, p := range data {
		for _, v := range p.Values {
			points = append(points, Point{X: p.Param, Y: v})
		}
	}
	return scatterPlot(points, width, height, 0, false)
}
