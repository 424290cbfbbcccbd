package plot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var errNothingToSave = errors.New("nothing to save")

// Export writes the current figure as PNG, limited to the visible window.
func (c *Canvas) Export(w io.Writer, width, height int) error {
	if c.Empty() {
		return errNothingToSave
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	l := c.committed
	if !l.ok {
		l = c.layout()
	}
	if c.image != nil {
		return c.exportImage(w, l.win, width, height)
	}
	return c.exportLines(w, l.win, width, height)
}

// SaveFile exports the figure into dir as <title>.png and returns the path.
func (c *Canvas) SaveFile(dir string, width, height int) (string, error) {
	name := c.title
	if name == "" {
		name = "figure"
	}
	path := filepath.Join(dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	bw := bufio.NewWriter(f)
	if err := c.Export(bw, width, height); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// visibleRuns splits a line into runs of visible points; invalid points
// and points outside the window break the line.
func (c *Canvas) visibleRuns(ln lineLayer, win window) (xs, ys [][]float64) {
	var cx, cy []float64
	flush := func() {
		if len(cx) > 0 {
			xs, ys = append(xs, cx), append(ys, cy)
		}
		cx, cy = nil, nil
	}
	for i := range ln.x {
		y, ok := c.forwardY(ln.y[i])
		x := ln.x[i]
		if !ok || math.IsNaN(x) || math.IsInf(x, 0) ||
			x < win.x0 || x > win.x1 || y < win.y0 || y > win.y1 {
			flush()
			continue
		}
		cx, cy = append(cx, x), append(cy, y)
	}
	flush()
	return xs, ys
}

func (c *Canvas) exportLines(w io.Writer, win window, width, height int) error {
	style := chart.Style{
		StrokeColor: drawing.ColorFromHex(ColorLine[1:]),
		StrokeWidth: 1.5,
	}
	var series []chart.Series
	for _, ln := range c.lines {
		xs, ys := c.visibleRuns(ln, win)
		for i := range xs {
			s := style
			if len(xs[i]) == 1 {
				s = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 2, DotColor: style.StrokeColor}
			}
			series = append(series, chart.ContinuousSeries{XValues: xs[i], YValues: ys[i], Style: s})
		}
	}
	if len(series) == 0 {
		// an empty chart still needs one series for the axes
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{win.x0, win.x1},
			YValues: []float64{win.y0, win.y1},
			Style:   chart.Style{StrokeWidth: chart.Disabled},
		})
	}
	yName := "y"
	if c.logY {
		yName = "log10(y)"
	}
	ch := chart.Chart{
		Title:      c.title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "x", Range: &chart.ContinuousRange{Min: win.x0, Max: win.x1}},
		YAxis:      chart.YAxis{Name: yName, Range: &chart.ContinuousRange{Min: win.y0, Max: win.y1}},
		Series:     series,
	}
	return ch.Render(chart.PNG, w)
}

func (c *Canvas) color(t float64) drawing.Color {
	r, g, b := c.cmap.RGB(t)
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, col drawing.Color) {
	r.SetFillColor(col)
	r.SetStrokeColor(col)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func (c *Canvas) exportImage(w io.Writer, win window, width, height int) error {
	rd, err := chart.PNG(width, height)
	if err != nil {
		return err
	}
	const pad, titleH = 16, 28
	barW := 0
	if c.colorbar {
		barW = 48
	}
	fillRect(rd, 0, 0, width, height, drawing.ColorWhite)

	top := pad
	if c.title != "" {
		font, err := chart.GetDefaultFont()
		if err != nil {
			return err
		}
		rd.SetFont(font)
		rd.SetFontSize(12)
		rd.SetFontColor(drawing.ColorBlack)
		tb := rd.MeasureText(c.title)
		rd.Text(c.title, (width-tb.Width())/2, pad+tb.Height())
		top = titleH + pad
	}
	aw, ah := width-2*pad-barW, height-top-pad
	if aw <= 0 || ah <= 0 {
		return fmt.Errorf("image size %dx%d too small", width, height)
	}

	// sample at most four times finer than the visible data
	gw := min(aw, max(1, int(math.Ceil((win.x1-win.x0)*4))))
	gh := min(ah, max(1, int(math.Ceil((win.y1-win.y0)*4))))
	for gy := 0; gy < gh; gy++ {
		y := win.y0 + (float64(gy)+0.5)/float64(gh)*(win.y1-win.y0)
		py0, py1 := top+gy*ah/gh, top+(gy+1)*ah/gh
		for gx := 0; gx < gw; gx++ {
			x := win.x0 + (float64(gx)+0.5)/float64(gw)*(win.x1-win.x0)
			hex := c.sample(x, y)
			if hex == "" {
				continue
			}
			col := drawing.ColorFromHex(hex[1:])
			fillRect(rd, pad+gx*aw/gw, py0, pad+(gx+1)*aw/gw, py1, col)
		}
	}
	if c.colorbar {
		bx := width - pad - barW/2
		for py := 0; py < ah; py++ {
			t := 0.5
			if c.image.ok {
				t = 1 - (float64(py)+0.5)/float64(ah)
			}
			fillRect(rd, bx, top+py, bx+barW/4, top+py+1, c.color(t))
		}
	}
	return rd.Save(w)
}
