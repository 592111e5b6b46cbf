package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/integrators"
	"github.com/san-kum/sympend/internal/physics"
)

func newSystem(t *testing.T) *physics.DoublePendulum {
	t.Helper()
	dp, err := physics.NewDoublePendulum(physics.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return dp
}

func TestEnergyMean(t *testing.T) {
	dp := newSystem(t)
	m := NewEnergy(dp)

	rest := dynamo.State{0, 0, 0, 0}
	m.Observe(rest, 0)
	m.Observe(dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}, 0.02)

	want := (dp.Energy(rest) + 0) / 2
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected mean %f, got %f", want, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyBandAndDrift(t *testing.T) {
	dp := newSystem(t)
	band := NewEnergyBand(dp)
	drift := NewEnergyDrift(dp)

	states := []dynamo.State{
		{0.3, 0.3, 0, 0},
		{0.3, 0.3, 0.1, 0},
		{0.3, 0.3, 0, 0.2},
	}
	e0 := dp.Energy(states[0])
	maxDev := 0.0
	for i, x := range states {
		band.Observe(x, float64(i))
		drift.Observe(x, float64(i))
		maxDev = math.Max(maxDev, math.Abs(dp.Energy(x)-e0))
	}

	if math.Abs(band.Value()-maxDev) > 1e-12 {
		t.Errorf("expected band %f, got %f", maxDev, band.Value())
	}
	if math.Abs(drift.Value()-maxDev/math.Abs(e0)) > 1e-12 {
		t.Errorf("expected drift %f, got %f", maxDev/math.Abs(e0), drift.Value())
	}
}

func TestFlips(t *testing.T) {
	f := NewFlips(1)
	angles := []float64{0, 2.5, 3.0, 3.3, 4.0, 3.2, 3.0, 0, -3.3, -9.5}
	for i, a := range angles {
		f.Observe(dynamo.State{0, a, 0, 0}, float64(i))
	}
	// Crossings at +pi (up), +pi (back), -pi, -3pi.
	if f.Value() != 4 {
		t.Errorf("expected 4 flips, got %f", f.Value())
	}

	f.Reset()
	f.Observe(dynamo.State{0, 0, 0, 0}, 0)
	if f.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", f.Value())
	}
	if NewFlips(0).Name() == NewFlips(1).Name() {
		t.Error("inner and outer flip metrics share a name")
	}
}

func TestCollect(t *testing.T) {
	dp := newSystem(t)
	tr, err := integrators.Integrate(dp.Params, physics.InitialState{Angle1: 0.3, Angle2: 0.3}, 1000, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	values := Collect(tr, Standard(dp)...)
	for _, name := range []string{"energy_mean", "energy_drift", "energy_band", "flips", "flips_inner"} {
		if _, ok := values[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if values["energy_drift"] > 5e-3 {
		t.Errorf("small swing drifted by %e", values["energy_drift"])
	}
	if values["flips"] != 0 {
		t.Errorf("small swing cannot flip, got %f", values["flips"])
	}

	stats := Statistics(tr, dp.Params)
	if math.Abs(stats.Band-values["energy_band"]) > 1e-12 {
		t.Errorf("Statistics band %f disagrees with metric %f", stats.Band, values["energy_band"])
	}
	if stats.Min > stats.Mean || stats.Mean > stats.Max {
		t.Errorf("inconsistent stats %+v", stats)
	}
}

func TestCollectStopsAtDivergence(t *testing.T) {
	dp := newSystem(t)
	tr := physics.NewTrajectory(physics.InitialState{Angle1: 0.1}, 4, 0.1)
	tr.Angle2[2] = math.NaN()

	band := NewEnergyBand(dp)
	Collect(tr, band)
	if math.IsNaN(band.Value()) {
		t.Error("non-finite sample leaked into metric")
	}

	stats := Statistics(tr, dp.Params)
	if math.IsNaN(stats.Mean) {
		t.Error("non-finite sample leaked into statistics")
	}
}
