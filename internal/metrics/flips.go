package metrics

import (
	"math"

	"github.com/san-kum/sympend/internal/dynamo"
)

// Flips counts how often one arm swings over the top, that is how often its
// angle crosses an odd multiple of pi.
type Flips struct {
	name    string
	index   int
	winding float64
	count   int
	samples int
}

// NewFlips watches the angle at index (0 for the inner arm, 1 for the outer).
func NewFlips(index int) *Flips {
	name := "flips"
	if index == 0 {
		name = "flips_inner"
	}
	return &Flips{name: name, index: index}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(x dynamo.State, t float64) {
	a := x[f.index]
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return
	}
	w := math.Floor((a + math.Pi) / (2 * math.Pi))
	if f.samples > 0 {
		f.count += int(math.Abs(w - f.winding))
	}
	f.winding = w
	f.samples++
}

func (f *Flips) Value() float64 {
	return float64(f.count)
}

func (f *Flips) Reset() {
	f.winding = 0
	f.count = 0
	f.samples = 0
}
