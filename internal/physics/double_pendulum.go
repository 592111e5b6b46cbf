package physics

import (
	"fmt"

	"github.com/san-kum/sympend/internal/dynamo"
)

// DoublePendulum exposes the Hamiltonian as a first-order system over the
// state {q1, q2, p1, p2} so generic steppers can drive it.
type DoublePendulum struct {
	Params Params
}

func NewDoublePendulum(p Params) (*DoublePendulum, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &DoublePendulum{Params: p}, nil
}

func (d *DoublePendulum) StateDim() int {
	return 4
}

func (d *DoublePendulum) Derive(x dynamo.State, t float64) dynamo.State {
	w1, w2 := VelocityAt(x[0], x[1], x[2], x[3], d.Params)
	f1, f2 := GradientForceAt(x[0], x[1], x[2], x[3], d.Params)
	return dynamo.State{w1, w2, f1, f2}
}

func (d *DoublePendulum) Velocity(x dynamo.State) dynamo.State {
	w1, w2 := VelocityAt(x[0], x[1], x[2], x[3], d.Params)
	return dynamo.State{w1, w2}
}

func (d *DoublePendulum) Force(x dynamo.State) dynamo.State {
	f1, f2 := GradientForceAt(x[0], x[1], x[2], x[3], d.Params)
	return dynamo.State{f1, f2}
}

func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	return Energy(x[0], x[1], x[2], x[3], d.Params)
}

// InitialState returns the phase-space vector of a release from rest.
func (d *DoublePendulum) InitialState(init InitialState) dynamo.State {
	return dynamo.State{init.Angle1, init.Angle2, 0, 0}
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass1":   d.Params.Mass1,
		"mass2":   d.Params.Mass2,
		"length1": d.Params.Length1,
		"length2": d.Params.Length2,
		"gravity": d.Params.Gravity,
	}
}

// SetParam updates one named constant. The previous value is kept when the
// new one does not validate.
func (d *DoublePendulum) SetParam(name string, value float64) error {
	next := d.Params
	switch name {
	case "mass1":
		next.Mass1 = value
	case "mass2":
		next.Mass2 = value
	case "length1":
		next.Length1 = value
	case "length2":
		next.Length2 = value
	case "gravity":
		next.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	d.Params = next
	return nil
}
