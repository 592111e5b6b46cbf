package metrics

import (
	"math"

	"github.com/san-kum/sympend/internal/dynamo"
)

// Energy is the mean Hamiltonian over the observed samples.
type Energy struct {
	name        string
	ham         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(ham dynamo.Hamiltonian) *Energy {
	return &Energy{name: "energy_mean", ham: ham}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += e.ham.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation |H - H0| / |H0|. It stays 0
// when H0 is exactly zero; use EnergyBand there.
type EnergyDrift struct {
	name          string
	ham           dynamo.Hamiltonian
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(ham dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", ham: ham}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.ham.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergyBand is the largest absolute deviation |H - H0|.
type EnergyBand struct {
	name          string
	ham           dynamo.Hamiltonian
	initialEnergy float64
	band          float64
	samples       int
}

func NewEnergyBand(ham dynamo.Hamiltonian) *EnergyBand {
	return &EnergyBand{name: "energy_band", ham: ham}
}

func (e *EnergyBand) Name() string { return e.name }

func (e *EnergyBand) Observe(x dynamo.State, t float64) {
	energy := e.ham.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++
	e.band = math.Max(e.band, math.Abs(energy-e.initialEnergy))
}

func (e *EnergyBand) Value() float64 {
	return e.band
}

func (e *EnergyBand) Reset() {
	e.initialEnergy = 0
	e.band = 0
	e.samples = 0
}
