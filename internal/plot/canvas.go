package plot

import (
	"math"
	"strconv"

	"npybrowse/internal/log"
)

// Colors used for everything that is not data.
const (
	ColorLine  = "#38BDF8"
	ColorAxis  = "#6B7280"
	ColorLabel = "#9CA3AF"
	ColorTitle = "#7C3AED"
)

type lineLayer struct {
	x, y []float64
}

type imageLayer struct {
	m      Matrix
	norm   Norm
	lo, hi float64 // in normalized space
	ok     bool    // false when no value can be shown
}

// layout is the outcome of the layout pass of one Draw.
type layout struct {
	ok   bool
	plot rect
	win  window
	bar  rect

	yTicks [3]string
	xTicks [3]string
	barHi  string
	barLo  string
}

// Canvas is a Surface that draws into a grid of terminal cells.
type Canvas struct {
	width, height int

	title    string
	logY     bool
	lines    []lineLayer
	image    *imageLayer
	colorbar bool
	cmap     *Colormap
	view     View

	frame     *Raster
	committed layout
}

// NewCanvas returns an empty canvas of size zero.
func NewCanvas() *Canvas {
	return &Canvas{
		cmap:  Viridis(),
		view:  HomeView(),
		frame: newRaster(0, 0),
	}
}

// SetSize sets the size in cells used by the next Draw.
func (c *Canvas) SetSize(w, h int) {
	c.width, c.height = max(0, w), max(0, h)
}

func (c *Canvas) Size() (w, h int) { return c.width, c.height }

// Frame returns the last committed frame.
func (c *Canvas) Frame() *Raster { return c.frame }

func (c *Canvas) Title() string { return c.title }
func (c *Canvas) LogY() bool { return c.logY }
func (c *Canvas) HasImage() bool { return c.image != nil }
func (c *Canvas) Colorbar() bool { return c.colorbar }
func (c *Canvas) View() View { return c.view }
func (c *Canvas) Empty() bool { return c.image == nil && len(c.lines) == 0 }

func (c *Canvas) Reset() {
	c.title = ""
	c.logY = false
	c.lines = nil
	c.image = nil
	c.colorbar = false
	c.view = HomeView()
}

func (c *Canvas) SetTitle(title string) { c.title = title }
func (c *Canvas) SetLogY(on bool) { c.logY = on }

// PlotLine adds a line through the points (x[i], y[i]). Extra values of
// the longer slice are ignored.
func (c *Canvas) PlotLine(x, y []float64) {
	n := min(len(x), len(y))
	c.lines = append(c.lines, lineLayer{x: x[:n], y: y[:n]})
}

// PlotImage replaces the image layer.
func (c *Canvas) PlotImage(m Matrix, norm Norm) {
	lo, hi, ok := norm.bounds(m)
	if !ok || hi <= lo {
		log.LogWithFields(log.F("norm", norm.String()), log.F("showable", ok)).Debug("Degenerate color range")
	}
	c.image = &imageLayer{m: m, norm: norm, lo: lo, hi: hi, ok: ok}
}

// AddColorbar shows a colorbar for the image layer; without one it does
// nothing.
func (c *Canvas) AddColorbar() {
	if c.image != nil {
		c.colorbar = true
	}
}

func (c *Canvas) ZoomIn() { c.view = c.view.zoomed(zoomStep) }
func (c *Canvas) ZoomOut() { c.view = c.view.zoomed(1 / zoomStep) }
func (c *Canvas) Home() { c.view = HomeView() }

// Pan moves the view by steps of a tenth of the visible span; positive dy
// moves up.
func (c *Canvas) Pan(dx, dy int) {
	c.view = c.view.panned(float64(dx)*panStep, float64(dy)*panStep)
}

// Draw runs the layout pass and rasterizes a new frame. A failure keeps
// the previous frame.
func (c *Canvas) Draw() {
	defer func() {
		if r := recover(); r != nil {
			log.LogWithFields(log.F("panic", r), log.F("title", c.title)).Error("Plot draw failed, keeping previous frame")
		}
	}()
	l := c.layout()
	c.frame = c.rasterize(l)
	c.committed = l
}

// CellToData maps a canvas cell to data coordinates. For images x is the
// column and y the row.
func (c *Canvas) CellToData(cx, cy int) (x, y float64, ok bool) {
	l := c.committed
	if !l.ok || !l.plot.contains(cx, cy) {
		return 0, 0, false
	}
	fx := (float64(cx-l.plot.x) + 0.5) / float64(l.plot.w)
	fy := (float64(cy-l.plot.y) + 0.5) / float64(l.plot.h)
	x = l.win.x0 + fx*(l.win.x1-l.win.x0)
	if c.image != nil {
		return x, l.win.y0 + fy*(l.win.y1-l.win.y0), true
	}
	y = l.win.y1 - fy*(l.win.y1-l.win.y0)
	if c.logY {
		y = math.Pow(10, y)
	}
	return x, y, true
}

func (c *Canvas) forwardY(v float64) (float64, bool) {
	if c.logY {
		return NormLog.forward(v)
	}
	return NormLinear.forward(v)
}

// dataBounds is the full extent of the content before zoom and pan.
func (c *Canvas) dataBounds() window {
	if c.image != nil {
		r, cols := c.image.m.Dims()
		return window{x0: 0, x1: float64(max(cols, 1)), y0: 0, y1: float64(max(r, 1))}
	}
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	for _, ln := range c.lines {
		for i := range ln.x {
			y, ok := c.forwardY(ln.y[i])
			if !ok || math.IsNaN(ln.x[i]) || math.IsInf(ln.x[i], 0) {
				continue
			}
			xlo, xhi = math.Min(xlo, ln.x[i]), math.Max(xhi, ln.x[i])
			ylo, yhi = math.Min(ylo, y), math.Max(yhi, y)
		}
	}
	if xlo > xhi {
		return window{x0: 0, x1: 1, y0: 0, y1: 1}
	}
	if xlo == xhi {
		xlo, xhi = xlo-0.5, xhi+0.5
	}
	if ylo == yhi {
		ylo, yhi = ylo-0.5, yhi+0.5
	} else {
		m := (yhi - ylo) * 0.05
		ylo, yhi = ylo-m, yhi+m
	}
	return window{x0: xlo, x1: xhi, y0: ylo, y1: yhi}
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func (c *Canvas) layout() layout {
	var l layout
	full := c.dataBounds()
	panY := c.view.PanY
	if c.image != nil {
		// image rows grow downwards
		panY = -panY
	}
	x0, x1 := c.view.window(full.x0, full.x1, c.view.PanX)
	y0, y1 := c.view.window(full.y0, full.y1, panY)
	l.win = window{x0: x0, x1: x1, y0: y0, y1: y1}

	ymid := (y0 + y1) / 2
	if c.image != nil {
		l.yTicks = [3]string{formatTick(y0), formatTick(ymid), formatTick(y1)}
	} else {
		inv := NormLinear.inverse
		if c.logY {
			inv = NormLog.inverse
		}
		l.yTicks = [3]string{formatTick(inv(y1)), formatTick(inv(ymid)), formatTick(inv(y0))}
	}
	l.xTicks = [3]string{formatTick(x0), formatTick((x0 + x1) / 2), formatTick(x1)}

	gutter := 0
	for _, t := range l.yTicks {
		gutter = max(gutter, len(t))
	}
	barW := 0
	if c.colorbar && c.image != nil {
		if c.image.ok {
			l.barHi = formatTick(c.image.norm.inverse(c.image.hi))
			l.barLo = formatTick(c.image.norm.inverse(c.image.lo))
		} else {
			l.barHi, l.barLo = "-", "-"
		}
		barW = 1 + 2 + 1 + max(len(l.barHi), len(l.barLo))
	}
	l.plot = rect{x: gutter + 1, y: 1, w: c.width - gutter - 1 - barW, h: c.height - 3}
	if barW > 0 {
		l.bar = rect{x: l.plot.x + l.plot.w + 1, y: l.plot.y, w: 2, h: l.plot.h}
	}
	l.ok = l.plot.w >= 2 && l.plot.h >= 1
	return l
}

func (c *Canvas) rasterize(l layout) *Raster {
	r := newRaster(c.width, c.height)
	if c.title != "" {
		r.text(max(0, (c.width-len([]rune(c.title)))/2), 0, c.title, ColorTitle)
	}
	if !l.ok {
		return r
	}
	p := l.plot
	c.drawAxes(r, l)
	if c.image != nil {
		c.drawImage(r, p, l.win)
		if c.colorbar {
			c.drawColorbar(r, l)
		}
	} else {
		c.drawLines(r, p, l.win)
	}
	return r
}

func (c *Canvas) drawAxes(r *Raster, l layout) {
	p := l.plot
	ax := p.x - 1
	for y := p.y; y < p.y+p.h; y++ {
		r.set(ax, y, Cell{Ch: '│', FG: ColorAxis})
	}
	r.set(ax, p.y+p.h, Cell{Ch: '└', FG: ColorAxis})
	for x := p.x; x < p.x+p.w; x++ {
		r.set(x, p.y+p.h, Cell{Ch: '─', FG: ColorAxis})
	}
	rows := [3]int{p.y, p.y + p.h/2, p.y + p.h - 1}
	for i, t := range l.yTicks {
		r.text(ax-len(t), rows[i], t, ColorLabel)
		r.set(ax, rows[i], Cell{Ch: '┤', FG: ColorAxis})
	}
	ly := p.y + p.h + 1
	left, mid, right := l.xTicks[0], l.xTicks[1], l.xTicks[2]
	r.text(p.x, ly, left, ColorLabel)
	rx := p.x + p.w - len(right)
	mx := p.x + (p.w-len(mid))/2
	if mx > p.x+len(left) && mx+len(mid) < rx {
		r.text(mx, ly, mid, ColorLabel)
	}
	if rx > p.x+len(left) {
		r.text(rx, ly, right, ColorLabel)
	}
}

func (c *Canvas) drawLines(r *Raster, p rect, win window) {
	b := newBrailleBuf(p.w, p.h)
	w2, h4 := float64(p.w*2), float64(p.h*4)
	// keep clipped end points strictly inside the last micro pixel
	cw, ch := w2-1e-9, h4-1e-9
	for _, ln := range c.lines {
		var px, py float64
		have := false
		for i := range ln.x {
			y, ok := c.forwardY(ln.y[i])
			x := ln.x[i]
			if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
				have = false
				continue
			}
			sx := (x - win.x0) / (win.x1 - win.x0) * w2
			sy := (1 - (y-win.y0)/(win.y1-win.y0)) * h4
			if have {
				if ax, ay, bx, by, ok := clipSegment(px, py, sx, sy, cw, ch); ok {
					b.drawLineMicro(int(ax), int(ay), int(bx), int(by))
				}
			} else if sx >= 0 && sy >= 0 && sx < w2 && sy < h4 {
				b.setPixel(int(sx), int(sy))
			}
			px, py, have = sx, sy, true
		}
	}
	for cy := 0; cy < p.h; cy++ {
		for cx := 0; cx < p.w; cx++ {
			if g := b.glyph(cx, cy); g != 0 {
				r.set(p.x+cx, p.y+cy, Cell{Ch: g, FG: ColorLine})
			}
		}
	}
}

// sample returns the color of the matrix element under (x, y), nearest
// neighbour, or "" when there is nothing to show.
func (c *Canvas) sample(x, y float64) string {
	img := c.image
	if !img.ok {
		return ""
	}
	rows, cols := img.m.Dims()
	if x < 0 || y < 0 {
		return ""
	}
	i, j := int(y), int(x)
	if i >= rows || j >= cols {
		return ""
	}
	t, ok := img.norm.scale(img.m.At(i, j), img.lo, img.hi)
	if !ok {
		return ""
	}
	return c.cmap.Hex(t)
}

func (c *Canvas) drawImage(r *Raster, p rect, win window) {
	sx := (win.x1 - win.x0) / float64(p.w)
	sy := (win.y1 - win.y0) / float64(2*p.h)
	for cy := 0; cy < p.h; cy++ {
		yt := win.y0 + (float64(2*cy)+0.5)*sy
		yb := win.y0 + (float64(2*cy+1)+0.5)*sy
		for cx := 0; cx < p.w; cx++ {
			x := win.x0 + (float64(cx)+0.5)*sx
			top, bot := c.sample(x, yt), c.sample(x, yb)
			switch {
			case top == "" && bot == "":
				continue
			case top == "":
				r.set(p.x+cx, p.y+cy, Cell{Ch: '▄', FG: bot})
			default:
				r.set(p.x+cx, p.y+cy, Cell{Ch: '▀', FG: top, BG: bot})
			}
		}
	}
}

func (c *Canvas) drawColorbar(r *Raster, l layout) {
	b := l.bar
	h2 := float64(2 * b.h)
	for cy := 0; cy < b.h; cy++ {
		top, bot := c.cmap.Hex(0.5), c.cmap.Hex(0.5)
		if c.image.ok {
			top = c.cmap.Hex(1 - (float64(2*cy)+0.5)/h2)
			bot = c.cmap.Hex(1 - (float64(2*cy+1)+0.5)/h2)
		}
		for cx := 0; cx < b.w; cx++ {
			r.set(b.x+cx, b.y+cy, Cell{Ch: '▀', FG: top, BG: bot})
		}
	}
	r.text(b.x+b.w+1, b.y, l.barHi, ColorLabel)
	r.text(b.x+b.w+1, b.y+b.h-1, l.barLo, ColorLabel)
}
