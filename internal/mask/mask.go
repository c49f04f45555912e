package mask

import (
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// Box is the bounding box type used by masks.
type Box = geometry.BoundingBox

// Mask is a binary raster of Box.Height rows by Box.Width columns, stored
// row-major. Pix[r*Box.Width+c] is the pixel at global (Box.Left+c, Box.Top+r).
type Mask struct {
	Box geometry.BoundingBox
	Pix []bool
}

// New allocates an all-background mask covering box.
func New(box geometry.BoundingBox) *Mask {
	return &Mask{Box: box, Pix: make([]bool, box.Width*box.Height)}
}

// FromRows builds a mask from row-major rows placed with its top-left pixel at
// (offsetX, offsetY). Non-zero values are foreground. Rows must share a length.
func FromRows(rows [][]uint8, offsetX, offsetY int) *Mask {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	m := New(geometry.NewBoundingBox(offsetY, offsetX, w, h))
	for r, row := range rows {
		for c, v := range row {
			m.Pix[r*w+c] = v != 0
		}
	}
	return m
}

// Filled returns an all-foreground mask covering box.
func Filled(box geometry.BoundingBox) *Mask {
	m := New(box)
	for i := range m.Pix {
		m.Pix[i] = true
	}
	return m
}

// At reports the pixel at global (x, y). Pixels outside the box are background.
func (m *Mask) At(x, y int) bool {
	if !m.Box.ContainsPixel(x, y) {
		return false
	}
	return m.Pix[(y-m.Box.Top)*m.Box.Width+(x-m.Box.Left)]
}

// Set writes the pixel at global (x, y). Writes outside the box are dropped.
func (m *Mask) Set(x, y int, v bool) {
	if !m.Box.ContainsPixel(x, y) {
		return
	}
	m.Pix[(y-m.Box.Top)*m.Box.Width+(x-m.Box.Left)] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the mask has no foreground pixel.
func (m *Mask) IsEmpty() bool {
	for _, v := range m.Pix {
		if v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	return &Mask{Box: m.Box, Pix: append([]bool(nil), m.Pix...)}
}

// Equal reports whether both masks have the same box and pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.Box != o.Box || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i, v := range m.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// Crop returns the part of m under box, re-sized to box. Pixels of box that lie
// outside m are background.
func (m *Mask) Crop(box geometry.BoundingBox) *Mask {
	out := New(box)
	Replace(out, m)
	return out
}

// Extent returns the tight box around the foreground pixels, and false when the
// mask is empty.
func (m *Mask) Extent() (geometry.BoundingBox, bool) {
	w, h := m.Box.Width, m.Box.Height
	minC, minR := w, h
	maxC, maxR := -1, -1
	for r := 0; r < h; r++ {
		row := m.Pix[r*w : (r+1)*w]
		for c, v := range row {
			if !v {
				continue
			}
			minC = min(minC, c)
			maxC = max(maxC, c)
			minR = min(minR, r)
			maxR = max(maxR, r)
		}
	}
	if maxC < 0 {
		return geometry.BoundingBox{}, false
	}
	return geometry.NewBoundingBox(m.Box.Top+minR, m.Box.Left+minC, maxC-minC+1, maxR-minR+1), true
}

// Tight crops the mask to its foreground extent. It returns false for an empty mask.
func (m *Mask) Tight() (*Mask, bool) {
	box, ok := m.Extent()
	if !ok {
		return nil, false
	}
	if box == m.Box {
		return m.Clone(), true
	}
	return m.Crop(box), true
}

// Pad returns a copy of m grown by n background pixels on every side.
func (m *Mask) Pad(n int) *Mask {
	return m.Crop(m.Box.Pad(n))
}

// Invert returns the complement of m over the same box.
func (m *Mask) Invert() *Mask {
	out := New(m.Box)
	for i, v := range m.Pix {
		out.Pix[i] = !v
	}
	return out
}

// Centroid returns the mean global coordinate of the foreground pixels. It
// panics on an empty mask: callers must never ask for the centroid of nothing.
func (m *Mask) Centroid() geometry.Point {
	var sx, sy float64
	n := 0
	w := m.Box.Width
	for i, v := range m.Pix {
		if !v {
			continue
		}
		sx += float64(m.Box.Left + i%w)
		sy += float64(m.Box.Top + i/w)
		n++
	}
	if n == 0 {
		panic("mask: centroid of an empty mask")
	}
	return geometry.Point{X: sx / float64(n), Y: sy / float64(n)}
}
