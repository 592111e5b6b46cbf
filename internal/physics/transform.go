package physics

import "math"

// CartesianTrace holds both bob positions for every trajectory sample.
type CartesianTrace struct {
	X1 []float64
	Y1 []float64
	X2 []float64
	Y2 []float64
}

func (c CartesianTrace) Len() int {
	return len(c.X1)
}

// BobPositions maps a pair of angles to Cartesian bob positions with the
// pivot at the origin.
func BobPositions(a1, a2 float64, p Params) (x1, y1, x2, y2 float64) {
	x1 = p.Length1 * math.Sin(a1)
	y1 = -p.Length1 * math.Cos(a1)
	x2 = p.Length2*math.Sin(a2) + x1
	y2 = -p.Length2*math.Cos(a2) + y1
	return
}

func CoordinateTransform(tr *Trajectory, p Params) CartesianTrace {
	n := tr.Len()
	out := CartesianTrace{
		X1: make([]float64, n),
		Y1: make([]float64, n),
		X2: make([]float64, n),
		Y2: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		out.X1[i], out.Y1[i], out.X2[i], out.Y2[i] = BobPositions(tr.Angle1[i], tr.Angle2[i], p)
	}
	return out
}
