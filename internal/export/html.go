package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/sympend/internal/physics"
	"github.com/san-kum/sympend/internal/storage"
)

// maxChartPoints caps the samples handed to the browser per series.
const maxChartPoints = 2000

// WriteHTML renders an interactive page for a stored run: the outer bob path,
// both angles over time and the energy over time.
func WriteHTML(w io.Writer, meta *storage.RunMetadata, tr *physics.Trajectory) error {
	p, err := meta.Config.Params()
	if err != nil {
		return err
	}
	n := tr.FirstNonFinite()
	if n < 0 {
		n = tr.Len()
	}
	stride := 1
	if n > maxChartPoints {
		stride = (n + maxChartPoints - 1) / maxChartPoints
	}

	trace := physics.CoordinateTransform(tr, p)
	energy := tr.Energies(p)
	subtitle := fmt.Sprintf("run=%s integrator=%s samples=%d dt=%g",
		meta.ID, meta.Config.Integrator, tr.Len(), tr.Dt)

	bob := make([]opts.ScatterData, 0, n/stride+1)
	times := make([]string, 0, n/stride+1)
	a1 := make([]opts.LineData, 0, n/stride+1)
	a2 := make([]opts.LineData, 0, n/stride+1)
	en := make([]opts.LineData, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		bob = append(bob, opts.ScatterData{Value: []interface{}{trace.X2[i], trace.Y2[i]}})
		times = append(times, fmt.Sprintf("%.2f", tr.Time(i)))
		a1 = append(a1, opts.LineData{Value: tr.Angle1[i]})
		a2 = append(a2, opts.LineData{Value: tr.Angle2[i]})
		en = append(en, opts.LineData{Value: energy[i]})
	}

	pad := p.Reach() + 1
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Double pendulum", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Outer bob path", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("bob 2", bob, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	angles := charts.NewLine()
	angles.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Angles"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rad"}),
	)
	angles.SetXAxis(times).
		AddSeries("angle 1", a1).
		AddSeries("angle 2", a2)

	energyChart := charts.NewLine()
	energyChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Energy", Subtitle: fmt.Sprintf("band=%.4g", meta.Metrics["energy_band"])}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "H", Scale: opts.Bool(true)}),
	)
	energyChart.SetXAxis(times).AddSeries("H", en)

	page := components.NewPage()
	page.SetPageTitle("sympend " + meta.ID)
	page.AddCharts(scatter, angles, energyChart)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
