package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameters indicates a non-positive or non-finite mass,
	// length or gravity, or a non-finite initial angle.
	ErrInvalidParameters = errors.New("dynamo: invalid physical parameters")

	// ErrNumericalDivergence indicates a trajectory sample became NaN or Inf.
	ErrNumericalDivergence = errors.New("dynamo: numerical divergence (NaN or Inf detected)")

	// ErrInvalidStep indicates a step count or step size that cannot drive a run.
	ErrInvalidStep = errors.New("dynamo: invalid step configuration")

	// ErrRunNotFound indicates a stored run id that does not exist.
	ErrRunNotFound = errors.New("dynamo: run not found")
)

// DivergenceError wraps ErrNumericalDivergence with the first bad sample.
type DivergenceError struct {
	Step  int
	Time  float64
	State State
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, ErrNumericalDivergence.Error())
}

func (e *DivergenceError) Unwrap() error {
	return ErrNumericalDivergence
}
