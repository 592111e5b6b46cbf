package analysis

import (
	"math"
	"strings"
)

const (
	dotRune   = '•'
	vAxisRune = '│'
	hAxisRune = '─'
)

// scatterPlot rasterises points onto a width x height grid. The data bounds
// are widened by pad times their range on each side. With axes set, x = 0
// and y = 0 are drawn where they fall inside the bounds.
func scatterPlot(points []Point, width, height int, pad float64, axes bool) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	minX, maxX = widen(minX, maxX, pad)
	minY, maxY = widen(minY, maxY, pad)

	col := func(x float64) int { return int((x - minX) / (maxX - minX) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/(maxY-minY)*float64(height-1)) }

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for _, p := range points {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = dotRune
		}
	}

	if axes {
		if c := col(0); minX <= 0 && maxX >= 0 && c >= 0 && c < width {
			for r := range grid {
				if grid[r][c] == ' ' {
					grid[r][c] = vAxisRune
				}
			}
		}
		if r := row(0); minY <= 0 && maxY >= 0 && r >= 0 && r < height {
			for c := range grid[r] {
				if grid[r][c] == ' ' {
					grid[r][c] = hAxisRune
				}
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// widen pads [lo, hi] by frac of its width on both sides; a degenerate range
// is treated as having width 1.
func widen(lo, hi, frac float64) (float64, float64) {
	rng := hi - lo
	if rng == 0 {
		rng = 1
		if frac == 0 {
			return lo - 0.5, hi + 0.5
		}
	}
	return lo - rng*frac, hi + rng*frac
}
