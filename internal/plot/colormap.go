package plot

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const lutSize = 256

// Colormap is a gradient sampled into a lookup table.
type Colormap struct {
	hex [lutSize]string
	rgb [lutSize][3]uint8
}

var viridisStops = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

var viridis = mustColormap(viridisStops)

// Viridis returns the default colormap.
func Viridis() *Colormap { return viridis }

func mustColormap(stops []string) *Colormap {
	cm, err := NewColormap(stops)
	if err != nil {
		panic(err)
	}
	return cm
}

// NewColormap blends evenly spaced hex stops in Lab space.
func NewColormap(stops []string) (*Colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("colormap needs at least two stops, got %d", len(stops))
	}
	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("colormap stop %q: %w", s, err)
		}
		cs[i] = c
	}
	cm := &Colormap{}
	segs := float64(len(cs) - 1)
	for i := 0; i < lutSize; i++ {
		t := float64(i) / (lutSize - 1) * segs
		k := int(t)
		if k >= len(cs)-1 {
			k = len(cs) - 2
		}
		c := cs[k].BlendLab(cs[k+1], t-float64(k)).Clamped()
		cm.hex[i] = c.Hex()
		r, g, b := c.RGB255()
		cm.rgb[i] = [3]uint8{r, g, b}
	}
	return cm, nil
}

func lutIndex(t float64) int {
	i := int(t*(lutSize-1) + 0.5)
	if i < 0 {
		return 0
	}
	if i >= lutSize {
		return lutSize - 1
	}
	return i
}

// Hex returns the color at t in [0, 1] as "#rrggbb".
func (c *Colormap) Hex(t float64) string { return c.hex[lutIndex(t)] }

// RGB returns the color at t in [0, 1].
func (c *Colormap) RGB(t float64) (r, g, b uint8) {
	v := c.rgb[lutIndex(t)]
	return v[0], v[1], v[2]
}
