// Package plot draws arrays onto a surface: line plots for sequences and
// paired series, heatmaps for matrices.
package plot

import "math"

// Matrix is the read access an image layer needs.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// Norm maps matrix values onto the colormap.
type Norm int

const (
	NormLinear Norm = iota
	NormLog
)

func (n Norm) String() string {
	if n == NormLog {
		return "log"
	}
	return "linear"
}

// Surface is the set of drawing operations the renderer uses.
type Surface interface {
	// Reset drops every layer, the title and axis settings.
	Reset()
	SetTitle(title string)
	// SetLogY switches the y axis of line plots to log10.
	SetLogY(on bool)
	PlotLine(x, y []float64)
	PlotImage(m Matrix, norm Norm)
	// AddColorbar attaches a colorbar to the current image.
	AddColorbar()
	// Draw lays out and commits the frame.
	Draw()
}

// forward maps a value into normalized space. ok is false for values the
// norm cannot show.
func (n Norm) forward(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if n == NormLog {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

// inverse undoes forward.
func (n Norm) inverse(v float64) float64 {
	if n == NormLog {
		return math.Pow(10, v)
	}
	return v
}

// bounds returns the forward-mapped range of m's showable values.
func (n Norm) bounds(m Matrix) (lo, hi float64, ok bool) {
	r, c := m.Dims()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			f, good := n.forward(m.At(i, j))
			if !good {
				continue
			}
			lo = math.Min(lo, f)
			hi = math.Max(hi, f)
			ok = true
		}
	}
	return lo, hi, ok
}

// scale returns the position of v within [lo, hi] in normalized space.
// A degenerate range puts every value in the middle.
func (n Norm) scale(v, lo, hi float64) (float64, bool) {
	f, ok := n.forward(v)
	if !ok {
		return 0, false
	}
	if hi <= lo {
		return 0.5, true
	}
	t := (f - lo) / (hi - lo)
	return math.Max(0, math.Min(1, t)), true
}
