package plot

const (
	zoomStep = 1.2
	zoomMin  = 0.05
	zoomMax  = 64
	panStep  = 0.1
)

// View is the zoom and pan applied on top of the data bounds.
// Pan is measured in fractions of the full data span.
type View struct {
	Zoom float64
	PanX float64
	PanY float64
}

// HomeView shows the full data bounds.
func HomeView() View { return View{Zoom: 1} }

func (v View) window(lo, hi, pan float64) (float64, float64) {
	span := hi - lo
	c := (lo+hi)/2 + pan*span
	half := span / 2 / v.Zoom
	return c - half, c + half
}

func (v View) zoomed(f float64) View {
	z := v.Zoom * f
	if z < zoomMin || z > zoomMax {
		return v
	}
	v.Zoom = z
	return v
}

// panned moves the view by a fraction of the visible span.
func (v View) panned(dx, dy float64) View {
	v.PanX += dx / v.Zoom
	v.PanY += dy / v.Zoom
	return v
}

// rect is a region of the canvas in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(cx, cy int) bool {
	return cx >= r.x && cx < r.x+r.w && cy >= r.y && cy < r.y+r.h
}

// window is a visible data range; for images y grows downwards.
type window struct {
	x0, x1 float64
	y0, y1 float64
}
