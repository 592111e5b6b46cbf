package experiment

import (
	"context"
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
)

// SweepPoint is the outcome of one grid cell.
type SweepPoint struct {
	Angle1Deg float64
	Angle2Deg float64
	ID        string
	Flips     float64
	// FirstFlip is the time of the first outer-arm flip, or -1 if the arm
	// never went over the top.
	FirstFlip  float64
	EnergyBand float64
	Diverged   bool
}

type SweepOptions struct {
	// Limit bounds the number of concurrent runs; zero means GOMAXPROCS.
	Limit int
	// Persist saves every cell to the runner's store.
	Persist bool
}

// Sweep runs base for every (angle1, angle2) pair, in parallel. Results are
// ordered row-major over angles1 then angles2. The first failing cell cancels
// the rest.
func (r *Runner) Sweep(ctx context.Context, base *config.Config, angles1, angles2 []float64, opts SweepOptions) ([]SweepPoint, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	points := make([]SweepPoint, len(angles1)*len(angles2))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, a1 := range angles1 {
		for j, a2 := range angles2 {
			idx := i*len(angles2) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				cfg := base.Clone()
				cfg.Angle1Deg, cfg.Angle2Deg = a1, a2

				var (
					res *Result
					err error
				)
				if opts.Persist {
					res, err = r.Run(ctx, cfg, "sweep")
				} else {
					res, err = r.integrate(ctx, cfg)
				}
				if err != nil && !errors.Is(err, dynamo.ErrNumericalDivergence) {
					return err
				}

				points[idx] = SweepPoint{
					Angle1Deg:  a1,
					Angle2Deg:  a2,
					ID:         res.Meta.ID,
					Flips:      res.Meta.Metrics["flips"],
					FirstFlip:  firstFlip(res),
					EnergyBand: res.Meta.Metrics["energy_band"],
					Diverged:   res.Diverged(),
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func firstFlip(res *Result) float64 {
	tr := res.Trajectory
	for i := 1; i < tr.Len() && tr.Finite(i); i++ {
		w0 := math.Floor((tr.Angle2[i-1] + math.Pi) / (2 * math.Pi))
		w1 := math.Floor((tr.Angle2[i] + math.Pi) / (2 * math.Pi))
		if w0 != w1 {
			return tr.Time(i)
		}
	}
	return -1
}

// Grid returns n evenly spaced values over [lo, hi].
func Grid(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
