package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/physics"
)

var (
	traceColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	armColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	angleColor = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// FigureFormats lists the file formats WriteFigure accepts.
var FigureFormats = []string{"eps", "pdf", "png", "svg"}

// DefaultFigureName is dp_<angle1>_<angle2>_<mass1>_<length1>_<length2>.eps
// with every value truncated to an integer.
func DefaultFigureName(cfg *config.Config) string {
	return fmt.Sprintf("dp_%d_%d_%d_%d_%d.eps",
		int(cfg.Angle1Deg), int(cfg.Angle2Deg), int(cfg.Mass1), int(cfg.Length1), int(cfg.Length2))
}

// Figure builds the two panels of a run: the path of the outer bob with the
// starting arm drawn in, and angle1 against angle2.
func Figure(cfg *config.Config, tr *physics.Trajectory) ([]*plot.Plot, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	n := tr.FirstNonFinite()
	if n < 0 {
		n = tr.Len()
	}
	if n == 0 {
		return nil, fmt.Errorf("no finite samples to plot")
	}
	trace := physics.CoordinateTransform(tr, p)

	bob := make(plotter.XYs, n)
	angles := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		bob[i] = plotter.XY{X: trace.X2[i], Y: trace.Y2[i]}
		angles[i] = plotter.XY{X: tr.Angle1[i], Y: tr.Angle2[i]}
	}

	left := plot.New()
	left.Title.Text = fmt.Sprintf("angle1=%g° angle2=%g° m1=%g m2=%g l1=%g l2=%g",
		cfg.Angle1Deg, cfg.Angle2Deg, cfg.Mass1, cfg.Mass2, cfg.Length1, cfg.Length2)
	left.X.Label.Text = "x"
	left.Y.Label.Text = "y"
	limit := p.Reach() + 1
	left.X.Min, left.X.Max = -limit, limit
	left.Y.Min, left.Y.Max = -limit, limit

	path, err := plotter.NewLine(bob)
	if err != nil {
		return nil, fmt.Errorf("trace line: %w", err)
	}
	path.Color = traceColor
	path.Width = vg.Points(0.5)

	arm, points, err := plotter.NewLinePoints(plotter.XYs{
		{X: 0, Y: 0},
		{X: trace.X1[0], Y: trace.Y1[0]},
		{X: trace.X2[0], Y: trace.Y2[0]},
	})
	if err != nil {
		return nil, fmt.Errorf("arm line: %w", err)
	}
	arm.Color = armColor
	arm.Width = vg.Points(2)
	points.Color = armColor
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(3)

	left.Add(path, arm, points)
	left.Legend.Add("bob 2", path)
	left.Legend.Add("t = 0", arm, points)
	left.Legend.Top = true

	right := plot.New()
	right.Title.Text = "Angle 1 vs Angle 2"
	right.X.Label.Text = "Angle 1 in radians"
	right.Y.Label.Text = "Angle 2 in radians"
	line, err := plotter.NewLine(angles)
	if err != nil {
		return nil, fmt.Errorf("angle line: %w", err)
	}
	line.Color = angleColor
	line.Width = vg.Points(0.5)
	right.Add(line, plotter.NewGrid())

	return []*plot.Plot{left, right}, nil
}

// WriteFigure renders the figure side by side in the given format.
func WriteFigure(w io.Writer, format string, cfg *config.Config, tr *physics.Trajectory) error {
	plots, err := Figure(cfg, tr)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(14*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("figure format %q: %w", format, err)
	}
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX: vg.Millimeter * 8, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, draw.New(c))
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}

// SaveFigure writes the figure to path, picking the format from its
// extension.
func SaveFigure(path string, cfg *config.Config, tr *physics.Trajectory) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supported(format) {
		return fmt.Errorf("unsupported figure format %q (want one of %s)", format, strings.Join(FigureFormats, ", "))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteFigure(f, format, cfg, tr); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func supported(format string) bool {
	for _, f := range FigureFormats {
		if f == format {
			return true
		}
	}
	return false
}
