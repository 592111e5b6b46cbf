package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/integrators"
)

// Symplectic names the staggered symplectic Euler scheme. Runs under this
// name go through integrators.Integrate; every other name goes through
// integrators.Run with the registered stepper.
const Symplectic = "symplectic"

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators[Symplectic] = func() dynamo.Integrator { return integrators.NewSymplecticEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

// GetIntegrator returns a fresh stepper; steppers with scratch buffers must
// not be shared between runs.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
