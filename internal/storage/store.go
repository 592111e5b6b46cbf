package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/physics"
)

// DefaultPath is the database file used by the CLI when none is given.
const DefaultPath = "sympend.db"

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists runs and their trajectories in a SQLite database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	CreatedAt  time.Time          `json:"created_at"`
	Config     config.Config      `json:"config"`
	Samples    int                `json:"samples"`
	DivergedAt int                `json:"diverged_at"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Diverged reports whether the stored trajectory ended early on a NaN or Inf.
func (m *RunMetadata) Diverged() bool {
	return m.DivergedAt >= 0
}

// Open connects to the database at path and brings its schema up to date.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db, log); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion is the applied migration version.
func (s *Store) SchemaVersion() (uint, error) {
	v, dirty, err := schemaVersion(s.db, s.log)
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, fmt.Errorf("schema version %d is dirty", v)
	}
	return v, nil
}

// Save writes meta and every sample of tr in one transaction. An empty
// meta.ID is replaced with a fresh UUID; the id is returned either way.
func (s *Store) Save(ctx context.Context, meta *RunMetadata, tr *physics.Trajectory) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	meta.Samples = tr.Len()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	c := meta.Config
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, integrator, angle1_deg, angle2_deg,
			mass1, mass2, length1, length2, gravity, horizon, dt, steps, samples, diverged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Label, meta.CreatedAt.UTC().Format(timeLayout), c.Integrator,
		c.Angle1Deg, c.Angle2Deg, c.Mass1, c.Mass2, c.Length1, c.Length2, c.Gravity,
		c.Horizon, c.Dt, c.Steps, meta.Samples, meta.DivergedAt)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run_id, idx, angle1, angle2, momentum1, momentum2) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i := 0; i < tr.Len(); i++ {
		// Non-finite values are stored as NULL and read back as NaN.
		if _, err := stmt.ExecContext(ctx, meta.ID, i,
			nullable(tr.Angle1[i]), nullable(tr.Angle2[i]),
			nullable(tr.Momentum1[i]), nullable(tr.Momentum2[i])); err != nil {
			return "", fmt.Errorf("insert sample %d: %w", i, err)
		}
	}

	for name, value := range meta.Metrics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_metrics (run_id, name, value) VALUES (?, ?, ?)`,
			meta.ID, name, nullable(value)); err != nil {
			return "", fmt.Errorf("insert metric %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	s.log.Debug("run saved", "id", meta.ID, "samples", meta.Samples)
	return meta.ID, nil
}

const runColumns = `id, label, created_at, integrator, angle1_deg, angle2_deg,
	mass1, mass2, length1, length2, gravity, horizon, dt, steps, samples, diverged_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunMetadata, error) {
	var (
		meta    RunMetadata
		created string
	)
	c := &meta.Config
	err := row.Scan(&meta.ID, &meta.Label, &created, &c.Integrator, &c.Angle1Deg, &c.Angle2Deg,
		&c.Mass1, &c.Mass2, &c.Length1, &c.Length2, &c.Gravity, &c.Horizon, &c.Dt, &c.Steps,
		&meta.Samples, &meta.DivergedAt)
	if err != nil {
		return nil, err
	}
	meta.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return &meta, nil
}

// List returns every stored run, newest first, without metrics.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

// Load returns the metadata and metrics of one run. Unknown ids report
// dynamo.ErrRunNotFound.
func (s *Store) Load(ctx context.Context, id string) (*RunMetadata, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, dynamo.ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM run_metrics WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta.Metrics = make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value sql.NullFloat64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		meta.Metrics[name] = math.NaN()
		if value.Valid {
			meta.Metrics[name] = value.Float64
		}
	}
	return meta, rows.Err()
}

// LoadTrajectory rebuilds the stored samples of a run.
func (s *Store) LoadTrajectory(ctx context.Context, id string) (*physics.Trajectory, error) {
	meta, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, angle1, angle2, momentum1, momentum2 FROM samples WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tr := physics.NewTrajectory(physics.InitialState{}, meta.Samples, meta.Config.Dt)
	n := 0
	for rows.Next() {
		var (
			idx int
			v   [4]sql.NullFloat64
		)
		if err := rows.Scan(&idx, &v[0], &v[1], &v[2], &v[3]); err != nil {
			return nil, err
		}
		if idx < 0 || idx >= tr.Len() {
			return nil, fmt.Errorf("sample index %d out of range for run %s", idx, id)
		}
		x := make(dynamo.State, 4)
		for k := range v {
			x[k] = math.NaN()
			if v[k].Valid {
				x[k] = v[k].Float64
			}
		}
		tr.SetState(idx, x)
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if n != meta.Samples {
		return nil, fmt.Errorf("run %s: expected %d samples, found %d", id, meta.Samples, n)
	}
	return tr, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, dynamo.ErrRunNotFound)
	}
	return nil
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
