package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/integrators"
	"github.com/san-kum/sympend/internal/metrics"
	"github.com/san-kum/sympend/internal/physics"
	"github.com/san-kum/sympend/internal/storage"
)

// Runner turns a configuration into a trajectory, its metrics and, when a
// store is attached, a persisted run.
type Runner struct {
	store    *storage.Store
	registry *Registry
	log      *slog.Logger
}

// NewRunner builds a runner. store may be nil, in which case nothing is
// persisted.
func NewRunner(store *storage.Store, log *slog.Logger) *Runner {
	return &Runner{store: store, registry: NewRegistry(), log: log}
}

func (r *Runner) Registry() *Registry {
	return r.registry
}

type Result struct {
	Meta       storage.RunMetadata
	Params     physics.Params
	Trajectory *physics.Trajectory
	Elapsed    time.Duration
}

func (res *Result) Diverged() bool {
	return res.Meta.Diverged()
}

// Run integrates cfg and records it under label. A run that hits a NaN or
// Inf is still measured and saved; the returned error then wraps
// dynamo.ErrNumericalDivergence next to a non-nil Result.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, label string) (*Result, error) {
	res, runErr := r.integrate(ctx, cfg)
	if res == nil {
		return nil, runErr
	}
	res.Meta.Label = label

	if r.store != nil {
		if _, err := r.store.Save(ctx, &res.Meta, res.Trajectory); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		r.log.Info("run saved", "id", res.Meta.ID, "label", label)
	}
	return res, runErr
}

func (r *Runner) integrate(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	if cfg.Integrator == "" {
		cfg.Integrator = Symplectic
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	init, err := cfg.InitialState()
	if err != nil {
		return nil, err
	}
	dp, err := physics.NewDoublePendulum(p)
	if err != nil {
		return nil, err
	}

	r.log.Debug("run started",
		"integrator", cfg.Integrator,
		"angle1_deg", cfg.Angle1Deg, "angle2_deg", cfg.Angle2Deg,
		"steps", cfg.Steps, "dt", cfg.Dt)

	start := time.Now()
	var tr *physics.Trajectory
	if cfg.Integrator == Symplectic {
		tr, err = integrators.Integrate(p, init, cfg.Steps, cfg.Dt)
	} else {
		stepper, lookupErr := r.registry.GetIntegrator(cfg.Integrator)
		if lookupErr != nil {
			return nil, lookupErr
		}
		tr, err = integrators.Run(stepper, dp, dp.InitialState(init), cfg.Steps, cfg.Dt)
	}
	elapsed := time.Since(start)

	var div *dynamo.DivergenceError
	switch {
	case err == nil:
	case errors.As(err, &div):
		r.log.Warn("numerical divergence", "integrator", cfg.Integrator, "step", div.Step, "time", div.Time)
	default:
		return nil, err
	}

	res := &Result{
		Meta: storage.RunMetadata{
			Config:     *cfg,
			DivergedAt: -1,
			Metrics:    metrics.Collect(tr, metrics.Standard(dp)...),
		},
		Params:     p,
		Trajectory: tr,
		Elapsed:    elapsed,
	}
	if div != nil {
		res.Meta.DivergedAt = div.Step
	}
	res.Meta.Samples = tr.Len()

	r.log.Debug("run finished",
		"integrator", cfg.Integrator,
		"samples", tr.Len(),
		"energy_band", res.Meta.Metrics["energy_band"],
		"elapsed", elapsed)
	return res, err
}
