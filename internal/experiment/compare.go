package experiment

import (
	"context"
	"errors"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
)

// Comparison is one integrator's outcome on a shared configuration.
type Comparison struct {
	Integrator string
	Result     *Result
	Diverged   bool
}

// Compare runs cfg once per named integrator without persisting anything.
// Divergence is reported per entry rather than as an error.
func (r *Runner) Compare(ctx context.Context, cfg *config.Config, names []string) ([]Comparison, error) {
	if len(names) == 0 {
		names = r.registry.ListIntegrators()
	}

	out := make([]Comparison, 0, len(names))
	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		res, err := r.integrate(ctx, c)
		if err != nil && !errors.Is(err, dynamo.ErrNumericalDivergence) {
			return nil, err
		}
		out = append(out, Comparison{Integrator: name, Result: res, Diverged: res.Diverged()})
	}
	return out, nil
}
