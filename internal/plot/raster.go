package plot

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one terminal cell of a frame. Colors are "#rrggbb" or empty for
// the terminal default.
type Cell struct {
	Ch rune
	FG string
	BG string
}

// Raster is a committed frame.
type Raster struct {
	W, H  int
	Cells [][]Cell
}

func newRaster(w, h int) *Raster {
	cells := make([][]Cell, h)
	for y := range cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' '}
		}
		cells[y] = row
	}
	return &Raster{W: w, H: h, Cells: cells}
}

func (r *Raster) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return
	}
	r.Cells[y][x] = c
}

// text writes s starting at (x, y), clipped to the raster.
func (r *Raster) text(x, y int, s, fg string) {
	for _, ch := range s {
		r.set(x, y, Cell{Ch: ch, FG: fg})
		x++
	}
}

// Equal compares two frames cell by cell.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.W != o.W || r.H != o.H {
		return false
	}
	for y := range r.Cells {
		for x := range r.Cells[y] {
			if r.Cells[y][x] != o.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Plain is the frame without colors, one line per row.
func (r *Raster) Plain() string {
	lines := make([]string, r.H)
	for y, row := range r.Cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.Ch
		}
		lines[y] = string(rs)
	}
	return strings.Join(lines, "\n")
}

// String renders the frame with colors, grouping runs of equal style.
func (r *Raster) String() string {
	lines := make([]string, r.H)
	var sb strings.Builder
	for y, row := range r.Cells {
		sb.Reset()
		for x := 0; x < len(row); {
			fg, bg := row[x].FG, row[x].BG
			end := x
			var run []rune
			for end < len(row) && row[end].FG == fg && row[end].BG == bg {
				run = append(run, row[end].Ch)
				end++
			}
			sb.WriteString(styleFor(fg, bg).Render(string(run)))
			x = end
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(fg, bg string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s
}
