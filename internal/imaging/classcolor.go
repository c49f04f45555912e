package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseClassColor parses "#RRGGBB" or "RRGGBB".
func ParseClassColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid class colour %q: %w", s, err)
	}
	return c, nil
}

// FormatClassColor returns c as "#rrggbb".
func FormatClassColor(c colorful.Color) string {
	return c.Clamped().Hex()
}

// ClassPalette returns n visually distinct colours. Hues advance by the golden
// angle in HCL space so the palette is stable for a given n.
func ClassPalette(n int) []colorful.Color {
	const goldenAngle = 137.50776405003785
	out := make([]colorful.Color, n)
	for i := range out {
		h := math.Mod(30+float64(i)*goldenAngle, 360)
		out[i] = colorful.Hcl(h, 0.55, 0.7).Clamped()
	}
	return out
}

// SampleColorResult describes the colour at one pixel.
type SampleColorResult struct {
	X   int        `json:"x"`
	Y   int        `json:"y"`
	Hex string     `json:"hex"`
	RGB [3]uint8   `json:"rgb"`
	Lab [3]float64 `json:"lab"`
}

// SampleColor reads the pixel at (x, y), used to pick class colours from a
// reference image or to tune the carve-hole tolerance.
func SampleColor(img image.Image, x, y int) (*SampleColorResult, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return &SampleColorResult{X: x, Y: y, Hex: "#000000"}, nil
	}
	r, g, b := c.RGB255()
	l, a, bb := c.Lab()
	return &SampleColorResult{
		X:   x,
		Y:   y,
		Hex: c.Hex(),
		RGB: [3]uint8{r, g, b},
		Lab: [3]float64{l, a, bb},
	}, nil
}
