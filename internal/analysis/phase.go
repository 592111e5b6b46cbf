package analysis

import (
	"fmt"

	"github.com/san-kum/sympend/internal/physics"
)

// Point is one phase-plane sample.
type Point struct {
	X, Y float64
}

// PhasePortrait2D holds two state components of a run.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait projects tr onto state components xIdx and yIdx
// ({angle1, angle2, momentum1, momentum2}). Non-finite samples end the
// portrait.
func NewPhasePortrait(tr *physics.Trajectory, xIdx, yIdx int) (*PhasePortrait2D, error) {
	if xIdx < 0 || xIdx > 3 || yIdx < 0 || yIdx > 3 {
		return nil, fmt.Errorf("phase indices %d, %d out of range [0, 3]", xIdx, yIdx)
	}
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, tr.Len()),
	}
	for i := 0; i < tr.Len() && tr.Finite(i); i++ {
		x := tr.State(i)
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return portrait, nil
}

// PhasePortraitToASCII renders the portrait as a width x height character
// plot with the zero axes drawn where they are in view.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil {
		return ""
	}
	return scatterPlot(portrait.Points, width, height, 0.1, true)
}

// PoincareSection records (angle2, momentum2) whenever angle1 rises through
// zero, interpolating linearly between the bracketing samples.
func PoincareSection(tr *physics.Trajectory) []Point {
	points := make([]Point, 0)
	for i := 1; i < tr.Len() && tr.Finite(i); i++ {
		prev, curr := tr.Angle1[i-1], tr.Angle1[i]
		if !(prev < 0 && curr >= 0) {
			continue
		}
		frac := -prev / (curr - prev)
		points = append(points, Point{
			X: tr.Angle2[i-1] + frac*(tr.Angle2[i]-tr.Angle2[i-1]),
			Y: tr.Momentum2[i-1] + frac*(tr.Momentum2[i]-tr.Momentum2[i-1]),
		})
	}
	return points
}
