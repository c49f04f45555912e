package geometry

import (
	"fmt"
	"image"
	"math"
)

// BoundingBox is an axis-aligned integer box in global raster coordinates.
//
// A box with zero width or height denotes "no region".
type BoundingBox struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewBoundingBox builds a box from its canonical (top, left, width, height) form.
// Negative sizes are clamped to zero.
func NewBoundingBox(top, left, width, height int) BoundingBox {
	return BoundingBox{Top: top, Left: left, Width: max(width, 0), Height: max(height, 0)}
}

// Right returns the exclusive right edge.
func (b BoundingBox) Right() int { return b.Left + b.Width }

// Bottom returns the exclusive bottom edge.
func (b BoundingBox) Bottom() int { return b.Top + b.Height }

// Area returns Width*Height.
func (b BoundingBox) Area() int { return b.Width * b.Height }

// Empty reports whether the box covers no pixels.
func (b BoundingBox) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// ContainsPixel reports whether the integer pixel (x, y) lies inside the box.
func (b BoundingBox) ContainsPixel(x, y int) bool {
	return x >= b.Left && x < b.Right() && y >= b.Top && y < b.Bottom()
}

// Rect converts the box to an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right(), b.Bottom())
}

// FromRect converts an image.Rectangle to a BoundingBox.
func FromRect(r image.Rectangle) BoundingBox {
	r = r.Canon()
	return BoundingBox{Top: r.Min.Y, Left: r.Min.X, Width: r.Dx(), Height: r.Dy()}
}

// Pad grows the box by n pixels on every side.
func (b BoundingBox) Pad(n int) BoundingBox {
	return NewBoundingBox(b.Top-n, b.Left-n, b.Width+2*n, b.Height+2*n)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[top=%d left=%d width=%d height=%d]", b.Top, b.Left, b.Width, b.Height)
}

// Union returns the smallest box containing all inputs. A single input is
// returned unchanged; no input yields the zero box.
func Union(boxes ...BoundingBox) BoundingBox {
	if len(boxes) == 0 {
		return BoundingBox{}
	}
	out := boxes[0]
	if len(boxes) == 1 {
		return out
	}
	top, left := out.Top, out.Left
	bottom, right := out.Bottom(), out.Right()
	for _, b := range boxes[1:] {
		top = min(top, b.Top)
		left = min(left, b.Left)
		bottom = max(bottom, b.Bottom())
		right = max(right, b.Right())
	}
	return NewBoundingBox(top, left, right-left, bottom-top)
}

// Intersects reports whether the two boxes overlap on both axes. Boxes that only
// share an edge do not intersect.
func Intersects(a, b BoundingBox) bool {
	return a.Left < b.Right() && b.Left < a.Right() &&
		a.Top < b.Bottom() && b.Top < a.Bottom()
}

// Intersection returns the overlapping box and true, or the zero box and false
// when the inputs do not intersect.
func Intersection(a, b BoundingBox) (BoundingBox, bool) {
	if !Intersects(a, b) {
		return BoundingBox{}, false
	}
	top := max(a.Top, b.Top)
	left := max(a.Left, b.Left)
	bottom := min(a.Bottom(), b.Bottom())
	right := min(a.Right(), b.Right())
	return NewBoundingBox(top, left, right-left, bottom-top), true
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner BoundingBox) bool {
	return inner.Left >= outer.Left && inner.Right() <= outer.Right() &&
		inner.Top >= outer.Top && inner.Bottom() <= outer.Bottom()
}

// FromPointRange returns the box spanning every point, expanded by padding on all
// sides. Minimum coordinates are floored and maximum coordinates ceiled, and the
// pixel at the maximum coordinate is included.
func FromPointRange(points []Point, padding int) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	left := int(math.Floor(minX)) - padding
	top := int(math.Floor(minY)) - padding
	right := int(math.Ceil(maxX)) + padding + 1
	bottom := int(math.Ceil(maxY)) + padding + 1
	return NewBoundingBox(top, left, right-left, bottom-top)
}
