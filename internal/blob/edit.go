package blob

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// DefaultMaxCurveFill is the fill ratio above which a closed curve is rejected
// as unbounded: an open stroke closed by the last-to-first join tends to fill
// nearly all of its own bounding box.
const DefaultMaxCurveFill = 0.95

// HoleSmoothingSigma is the Gaussian sigma applied to the source image before
// flood filling a hole.
const HoleSmoothingSigma = 1.0

// SnapCurveToBorder trims the leading and trailing points of an open polyline
// that fall outside the outer contour. It returns the sub-polyline running from
// the first interior point to the last one, or nil when no point is inside.
func (b *Blob) SnapCurveToBorder(points []geometry.Point) []geometry.Point {
	first, last := -1, -1
	for i, p := range points {
		if b.ContainsPoint(p.X, p.Y) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}
	return append([]geometry.Point(nil), points[first:last+1]...)
}

// CreateFromClosedCurve replaces the blob geometry with the region enclosed by a
// freehand closed curve. It returns false and leaves the blob untouched when the
// curve encloses nothing or fills more than DefaultMaxCurveFill of its box.
func (b *Blob) CreateFromClosedCurve(points []geometry.Point) bool {
	return b.CreateFromClosedCurveWithFill(points, DefaultMaxCurveFill)
}

// CreateFromClosedCurveWithFill is CreateFromClosedCurve with an explicit fill
// rejection ratio.
func (b *Blob) CreateFromClosedCurveWithFill(points []geometry.Point, maxFill float64) bool {
	region := ClosedCurveRegion(points, maxFill)
	if region == nil {
		return false
	}
	b.UpdateUsingMask(region)
	return true
}

// FromClosedCurve builds a new blob from a freehand closed curve, or returns nil
// when the curve is degenerate (see CreateFromClosedCurve).
func FromClosedCurve(points []geometry.Point, id int, maxFill float64) *Blob {
	region := ClosedCurveRegion(points, maxFill)
	if region == nil {
		return nil
	}
	return FromRegion(region, id)
}

// ClosedCurveRegion rasterizes the curve, flood fills its exterior from the
// canvas border and inverts the fill. The largest enclosed region is returned,
// or nil when nothing is enclosed or the region fills more than maxFill of its
// own bounding box.
func ClosedCurveRegion(points []geometry.Point, maxFill float64) *mask.Mask {
	if len(points) < 3 {
		return nil
	}
	canvas := mask.New(mask.PointsToBoundingBox(points, 2))
	mask.RasterizePolyline(canvas, points, true, true)

	box := canvas.Box
	outside := mask.Flood(box, image.Point{X: box.Left, Y: box.Top}, mask.Four, func(x, y int) bool {
		return !canvas.At(x, y)
	})
	region := mask.LargestComponent(outside.Invert(), mask.Four)
	if region == nil {
		return nil
	}
	if float64(region.Count()) > maxFill*float64(region.Box.Area()) {
		return nil
	}
	return region
}

// CarveHole flood fills from seed over a smoothed grayscale copy of src, keeping
// pixels whose intensity is within tolerance of the seed's, restricted to the
// blob's current mask. The filled region is returned as a preview. When commit is
// true the region is erased from the blob; applied reports whether that happened
// (it does not when the hole is empty or would erase the whole blob).
//
// src is addressed in global coordinates; only the part under the blob box is read.
func (b *Blob) CarveHole(seed geometry.Point, src image.Image, tolerance uint8, commit bool) (hole *mask.Mask, applied bool) {
	current := b.Mask()
	area := b.bbox.Rect().Intersect(src.Bounds())
	if area.Empty() {
		return nil, false
	}
	gray := imaging.Blur(imaging.Grayscale(imaging.Crop(src, area)), HoleSmoothingSigma)

	s := seed.Pixel()
	if !current.At(s.X, s.Y) || !s.In(area) {
		return nil, false
	}
	level := func(x, y int) uint8 {
		return color.GrayModel.Convert(gray.At(x-area.Min.X, y-area.Min.Y)).(color.Gray).Y
	}
	ref := int(level(s.X, s.Y))
	hole = mask.Flood(current.Box, s, mask.Four, func(x, y int) bool {
		if !current.At(x, y) || !(image.Point{X: x, Y: y}).In(area) {
			return false
		}
		d := int(level(x, y)) - ref
		return d >= -int(tolerance) && d <= int(tolerance)
	})
	if hole.IsEmpty() {
		return nil, false
	}
	if !commit {
		return hole, false
	}
	remaining := mask.Subtract(current, hole)
	if remaining.IsEmpty() {
		return hole, false
	}
	b.UpdateUsingMask(remaining)
	return hole, true
}
