package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/physics"
)

// Standard returns the metric set recorded for every run.
func Standard(ham dynamo.Hamiltonian) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(ham),
		NewEnergyDrift(ham),
		NewEnergyBand(ham),
		NewFlips(0),
		NewFlips(1),
	}
}

// Collect resets each metric, feeds it every finite sample of tr in order and
// returns the values by name.
func Collect(tr *physics.Trajectory, ms ...dynamo.Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < tr.Len(); i++ {
		if !tr.Finite(i) {
			break
		}
		x := tr.State(i)
		for _, m := range ms {
			m.Observe(x, tr.Time(i))
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// EnergyStats summarises an energy series.
type EnergyStats struct {
	Initial float64
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Band    float64
}

// Statistics summarises the Hamiltonian along the finite prefix of tr.
func Statistics(tr *physics.Trajectory, p physics.Params) EnergyStats {
	n := tr.FirstNonFinite()
	if n < 0 {
		n = tr.Len()
	}
	if n == 0 {
		return EnergyStats{}
	}
	e := tr.Energies(p)[:n]

	dev := make([]float64, n)
	copy(dev, e)
	floats.AddConst(-e[0], dev)
	band := math.Max(floats.Max(dev), -floats.Min(dev))

	var sd float64
	if n > 1 {
		sd = stat.StdDev(e, nil)
	}
	return EnergyStats{
		Initial: e[0],
		Mean:    stat.Mean(e, nil),
		StdDev:  sd,
		Min:     floats.Min(e),
		Max:     floats.Max(e),
		Band:    band,
	}
}
