package experiment

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/logging"
	"github.com/san-kum/sympend/internal/storage"
)

func newTestRunner(t *testing.T) (*Runner, *storage.Store) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return NewRunner(st, logging.Discard()), st
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	want := []string{"euler", "rk4", "rk45", "symplectic"}
	got := r.ListIntegrators()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
		if _, err := r.GetIntegrator(want[i]); err != nil {
			t.Errorf("GetIntegrator(%s): %v", want[i], err)
		}
	}

	if _, err := r.GetIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestRunPersists(t *testing.T) {
	runner, st := newTestRunner(t)
	ctx := context.Background()

	res, err := runner.Run(ctx, config.DefaultConfig(), "reference")
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.ID == "" {
		t.Fatal("expected run id")
	}
	if res.Trajectory.Len() != 1000 || res.Diverged() {
		t.Errorf("unexpected run: %d samples, diverged %v", res.Trajectory.Len(), res.Diverged())
	}
	if band := res.Meta.Metrics["energy_band"]; !(band > 0) || math.IsInf(band, 0) {
		t.Errorf("expected a positive finite energy band, got %f", band)
	}

	meta, err := st.Load(ctx, res.Meta.ID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Label != "reference" || meta.Config.Integrator != Symplectic {
		t.Errorf("unexpected stored metadata %+v", meta)
	}
	if meta.Metrics["energy_band"] != res.Meta.Metrics["energy_band"] {
		t.Error("stored metrics differ from the run")
	}

	tr, err := st.LoadTrajectory(ctx, res.Meta.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Angle2[999] != res.Trajectory.Angle2[999] {
		t.Error("stored trajectory differs from the run")
	}
}

func TestRunWithoutStore(t *testing.T) {
	runner := NewRunner(nil, logging.Discard())

	res, err := runner.Run(context.Background(), config.GetPreset("gentle"), "gentle")
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.ID != "" {
		t.Errorf("expected no id without a store, got %s", res.Meta.ID)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	runner, st := newTestRunner(t)
	cfg := config.DefaultConfig()
	cfg.Mass1 = -1

	res, err := runner.Run(context.Background(), cfg, "bad")
	if !errors.Is(err, dynamo.ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
	if res != nil {
		t.Error("expected no result")
	}

	runs, err := st.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("invalid run was stored: %d runs", len(runs))
	}
}

func TestRunDivergence(t *testing.T) {
	runner, st := newTestRunner(t)
	cfg := config.DefaultConfig()
	cfg.Dt = 1e300
	cfg.Steps = 100
	cfg.Horizon = 1e302

	res, err := runner.Run(context.Background(), cfg, "blowup")
	if !errors.Is(err, dynamo.ErrNumericalDivergence) {
		t.Fatalf("expected ErrNumericalDivergence, got %v", err)
	}
	if res == nil || !res.Diverged() || res.Meta.DivergedAt != 2 {
		t.Fatalf("expected a result diverged at step 2, got %+v", res)
	}

	meta, err := st.Load(context.Background(), res.Meta.ID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Samples != 3 || meta.DivergedAt != 2 {
		t.Errorf("unexpected stored run: %d samples, diverged at %d", meta.Samples, meta.DivergedAt)
	}
}

func TestRunCancelled(t *testing.T) {
	runner := NewRunner(nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx, config.DefaultConfig(), "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	runner := NewRunner(nil, logging.Discard())

	out, err := runner.Compare(context.Background(), config.GetPreset("gentle"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 comparisons, got %d", len(out))
	}

	band := make(map[string]float64)
	for _, c := range out {
		if c.Diverged {
			t.Errorf("%s diverged on the gentle run", c.Integrator)
		}
		band[c.Integrator] = c.Result.Meta.Metrics["energy_band"]
	}
	if !(band["rk4"] < band[Symplectic] && band[Symplectic] < band["euler"]) {
		t.Errorf("unexpected energy ordering: %v", band)
	}

	if _, err := runner.Compare(context.Background(), config.DefaultConfig(), []string{"midpoint"}); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestSweep(t *testing.T) {
	runner, st := newTestRunner(t)
	ctx := context.Background()

	base := config.DefaultConfig()
	angles1 := Grid(0, 30, 3)
	angles2 := Grid(-10, 10, 2)

	points, err := runner.Sweep(ctx, base, angles1, angles2, SweepOptions{Limit: 2, Persist: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}

	for i, a1 := range angles1 {
		for j, a2 := range angles2 {
			p := points[i*len(angles2)+j]
			if p.Angle1Deg != a1 || p.Angle2Deg != a2 {
				t.Errorf("cell (%d,%d) holds angles %f,%f", i, j, p.Angle1Deg, p.Angle2Deg)
			}
			if p.Flips != 0 || p.FirstFlip != -1 {
				t.Errorf("small swing at %f,%f flipped", a1, a2)
			}
			if p.ID == "" {
				t.Errorf("cell (%d,%d) not persisted", i, j)
			}
		}
	}

	runs, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 6 {
		t.Errorf("expected 6 stored runs, got %d", len(runs))
	}
}

func TestSweepStopsOnError(t *testing.T) {
	runner := NewRunner(nil, logging.Discard())
	base := config.DefaultConfig()
	base.Length1 = 0

	if _, err := runner.Sweep(context.Background(), base, Grid(0, 10, 4), Grid(0, 10, 4), SweepOptions{}); !errors.Is(err, dynamo.ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	g := Grid(-90, 90, 5)
	want := []float64{-90, -45, 0, 45, 90}
	for i := range want {
		if g[i] != want[i] {
			t.Errorf("position %d: expected %f, got %f", i, want[i], g[i])
		}
	}
	if len(Grid(3, 9, 1)) != 1 {
		t.Error("single-point grid")
	}
}
