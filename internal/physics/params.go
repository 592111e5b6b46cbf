package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/sympend/internal/dynamo"
)

// DefaultGravity is the gravitational acceleration used when none is given.
const DefaultGravity = 9.83

// Params holds the physical constants of a double pendulum. It is passed by
// value and never mutated once built.
type Params struct {
	Mass1   float64
	Mass2   float64
	Length1 float64
	Length2 float64
	Gravity float64
}

// NewParams validates and returns a parameter set.
func NewParams(m1, m2, l1, l2, g float64) (Params, error) {
	p := Params{Mass1: m1, Mass2: m2, Length1: l1, Length2: l2, Gravity: g}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// DefaultParams returns unit masses and lengths under DefaultGravity.
func DefaultParams() Params {
	return Params{Mass1: 1, Mass2: 1, Length1: 1, Length2: 1, Gravity: DefaultGravity}
}

// Validate reports ErrInvalidParameters for the first field that is not a
// strictly positive finite number.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"mass1", p.Mass1},
		{"mass2", p.Mass2},
		{"length1", p.Length1},
		{"length2", p.Length2},
		{"gravity", p.Gravity},
	}
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s = %v: %w", f.name, f.value, dynamo.ErrInvalidParameters)
		}
	}
	return nil
}

// Reach is the length of the fully extended pendulum.
func (p Params) Reach() float64 {
	return p.Length1 + p.Length2
}

// EnergyScale is the depth of the potential well, (m1+m2) g l1 + m2 g l2.
func (p Params) EnergyScale() float64 {
	return (p.Mass1+p.Mass2)*p.Gravity*p.Length1 + p.Mass2*p.Gravity*p.Length2
}

// InitialState is the starting configuration. Both bobs start at rest, so
// only the angles (radians) are carried.
type InitialState struct {
	Angle1 float64
	Angle2 float64
}

func NewInitialState(a1, a2 float64) (InitialState, error) {
	for i, a := range []float64{a1, a2} {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return InitialState{}, fmt.Errorf("angle%d = %v: %w", i+1, a, dynamo.ErrInvalidParameters)
		}
	}
	return InitialState{Angle1: a1, Angle2: a2}, nil
}

// InitialStateDegrees converts angles given in degrees.
func InitialStateDegrees(d1, d2 float64) (InitialState, error) {
	return NewInitialState(d1*math.Pi/180, d2*math.Pi/180)
}

// Degrees returns both angles in degrees.
func (s InitialState) Degrees() (float64, float64) {
	return s.Angle1 * 180 / math.Pi, s.Angle2 * 180 / math.Pi
}
