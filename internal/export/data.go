package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/physics"
	"github.com/san-kum/sympend/internal/storage"
)

var csvHeader = []string{
	"time", "angle1", "angle2", "momentum1", "momentum2",
	"x1", "y1", "x2", "y2", "energy",
}

// WriteCSV writes one row per sample with the phase-space state, both bob
// positions and the Hamiltonian.
func WriteCSV(w io.Writer, cfg *config.Config, tr *physics.Trajectory) error {
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	trace := physics.CoordinateTransform(tr, p)
	energy := tr.Energies(p)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for i := 0; i < tr.Len(); i++ {
		values := []float64{
			tr.Time(i), tr.Angle1[i], tr.Angle2[i], tr.Momentum1[i], tr.Momentum2[i],
			trace.X1[i], trace.Y1[i], trace.X2[i], trace.Y2[i], energy[i],
		}
		for k, v := range values {
			row[k] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	ID         string             `json:"id"`
	Label      string             `json:"label,omitempty"`
	Config     config.Config      `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
	DivergedAt int                `json:"diverged_at"`
	Dt         float64            `json:"dt"`
	Times      []float64          `json:"times"`
	Angle1     []float64          `json:"angle1"`
	Angle2     []float64          `json:"angle2"`
	Momentum1  []float64          `json:"momentum1"`
	Momentum2  []float64          `json:"momentum2"`
}

// WriteJSON writes the finite part of a run. JSON cannot carry NaN or Inf,
// so a diverged run is cut before its first bad sample and metrics that are
// not finite are left out.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, tr *physics.Trajectory) error {
	n := tr.FirstNonFinite()
	if n < 0 {
		n = tr.Len()
	}

	data := ExportData{
		ID:         meta.ID,
		Label:      meta.Label,
		Config:     meta.Config,
		Metrics:    make(map[string]float64, len(meta.Metrics)),
		DivergedAt: meta.DivergedAt,
		Dt:         tr.Dt,
		Times:      make([]float64, n),
		Angle1:     tr.Angle1[:n],
		Angle2:     tr.Angle2[:n],
		Momentum1:  tr.Momentum1[:n],
		Momentum2:  tr.Momentum2[:n],
	}
	for i := range data.Times {
		data.Times[i] = tr.Time(i)
	}
	for name, v := range meta.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			data.Metrics[name] = v
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
