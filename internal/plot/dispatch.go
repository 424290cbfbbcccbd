package plot

import (
	"path/filepath"
	"strings"

	"npybrowse/internal/array"
)

// Kind is the plot style chosen for an array.
type Kind int

const (
	KindUnsupported Kind = iota
	// KindLine plots a 1-D array against its index.
	KindLine
	// KindRowPair plots row 1 against row 0 of a 2xN array.
	KindRowPair
	// KindColPair plots column 1 against column 0 of an Nx2 array.
	KindColPair
	// KindImage shows a matrix as a heatmap.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRowPair:
		return "row-pair"
	case KindColPair:
		return "column-pair"
	case KindImage:
		return "image"
	}
	return "unsupported"
}

// Rules select the optional parts of the dispatch.
type Rules struct {
	// PairColumns treats Nx2 arrays as (x, y) columns.
	PairColumns bool
	// Title sets the plot title before drawing.
	Title bool
}

// TreeRules are used when browsing a directory tree.
var TreeRules = Rules{PairColumns: true, Title: true}

// FlatRules are used when browsing a flat list.
var FlatRules = Rules{}

// Options describe one render.
type Options struct {
	Rules    Rules
	Title    string
	LogScale bool
	Colorbar bool
}

// Classify picks the plot kind for a. The row rule wins over the column
// rule, so a 2x2 array is a row pair.
func Classify(a *array.Array, rules Rules) Kind {
	switch a.NDim() {
	case 1:
		return KindLine
	case 2:
		switch {
		case a.Shape[0] == 2:
			return KindRowPair
		case a.Shape[1] == 2 && rules.PairColumns:
			return KindColPair
		}
		return KindImage
	}
	return KindUnsupported
}

// Render draws a onto s. Unsupported arrays leave s untouched.
func Render(s Surface, a *array.Array, opt Options) Kind {
	k := Classify(a, opt.Rules)
	if k == KindUnsupported {
		return k
	}
	s.Reset()
	if opt.Rules.Title {
		s.SetTitle(opt.Title)
	}
	switch k {
	case KindLine:
		s.SetLogY(opt.LogScale)
		s.PlotLine(Index(a.Len()), a.Data)
	case KindRowPair:
		s.SetLogY(opt.LogScale)
		s.PlotLine(a.Row(0), a.Row(1))
	case KindColPair:
		s.SetLogY(opt.LogScale)
		s.PlotLine(a.Col(0), a.Col(1))
	case KindImage:
		norm := NormLinear
		if opt.LogScale {
			norm = NormLog
		}
		s.PlotImage(a, norm)
		if opt.Colorbar {
			s.AddColorbar()
		}
	}
	s.Draw()
	return k
}

// Index returns 0, 1, ..., n-1.
func Index(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

// TitleFor is the plot title of a file: its base name without extension.
func TitleFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
