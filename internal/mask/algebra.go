package mask

import (
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// JointCanvas allocates an all-background mask sized to the union of both boxes.
func JointCanvas(a, b geometry.BoundingBox) *Mask {
	return New(geometry.Union(a, b))
}

// Paint combines src into dst over the overlap of their boxes. With value true
// the foreground of src is OR-ed into dst; with value false it is erased from dst
// (dst AND NOT src). Paint is a no-op when the boxes do not intersect.
func Paint(dst, src *Mask, value bool) {
	overlap, ok := geometry.Intersection(dst.Box, src.Box)
	if !ok {
		return
	}
	for y := overlap.Top; y < overlap.Bottom(); y++ {
		di := (y-dst.Box.Top)*dst.Box.Width + (overlap.Left - dst.Box.Left)
		si := (y-src.Box.Top)*src.Box.Width + (overlap.Left - src.Box.Left)
		for x := 0; x < overlap.Width; x++ {
			if src.Pix[si+x] {
				dst.Pix[di+x] = value
			}
		}
	}
}

// Replace overwrites the dst pixels under the footprint of src with the values
// of src, for the overlapping region only.
func Replace(dst, src *Mask) {
	overlap, ok := geometry.Intersection(dst.Box, src.Box)
	if !ok {
		return
	}
	for y := overlap.Top; y < overlap.Bottom(); y++ {
		di := (y-dst.Box.Top)*dst.Box.Width + (overlap.Left - dst.Box.Left)
		si := (y-src.Box.Top)*src.Box.Width + (overlap.Left - src.Box.Left)
		copy(dst.Pix[di:di+overlap.Width], src.Pix[si:si+overlap.Width])
	}
}

// Intersect returns a AND b over the intersection of their boxes, or nil when the
// boxes do not intersect.
func Intersect(a, b *Mask) *Mask {
	overlap, ok := geometry.Intersection(a.Box, b.Box)
	if !ok {
		return nil
	}
	out := a.Crop(overlap)
	for y := overlap.Top; y < overlap.Bottom(); y++ {
		oi := (y - overlap.Top) * overlap.Width
		bi := (y-b.Box.Top)*b.Box.Width + (overlap.Left - b.Box.Left)
		for x := 0; x < overlap.Width; x++ {
			out.Pix[oi+x] = out.Pix[oi+x] && b.Pix[bi+x]
		}
	}
	return out
}

// Union returns a OR b over the joint canvas of both boxes.
func Union(a, b *Mask) *Mask {
	out := JointCanvas(a.Box, b.Box)
	Paint(out, a, true)
	Paint(out, b, true)
	return out
}

// Subtract returns a AND NOT b over the joint canvas of both boxes.
func Subtract(a, b *Mask) *Mask {
	out := JointCanvas(a.Box, b.Box)
	Paint(out, a, true)
	Paint(out, b, false)
	return out
}

// RasterizePoints writes value at every point location. Points are converted to
// pixels by flooring; points outside the mask are silently dropped.
func RasterizePoints(m *Mask, points []geometry.Point, value bool) {
	for _, p := range points {
		px := p.Pixel()
		m.Set(px.X, px.Y, value)
	}
}

// RasterizePolyline writes value along the 8-connected path joining consecutive
// points, optionally closing the path. Pixels outside the mask are dropped.
func RasterizePolyline(m *Mask, points []geometry.Point, value, closed bool) {
	for _, px := range geometry.Polyline(points, closed) {
		m.Set(px.X, px.Y, value)
	}
}

// PointsToBoundingBox returns the box spanning points, padded on every side.
func PointsToBoundingBox(points []geometry.Point, padding int) geometry.BoundingBox {
	return geometry.FromPointRange(points, padding)
}
