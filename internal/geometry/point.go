package geometry

import (
	"image"
	"math"
)

// Point is a 2D point in global image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Pixel returns the integer pixel containing the point, flooring both axes.
func (p Point) Pixel() image.Point {
	return image.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Line returns the 8-connected pixels of the segment a-b using Bresenham's
// algorithm. Both endpoints are included.
func Line(a, b image.Point) []image.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	pts := make([]image.Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		pts = append(pts, image.Point{X: x, Y: y})
		if x == b.X && y == b.Y {
			return pts
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Polyline rasterizes consecutive points into a continuous 8-connected pixel path.
// When closed is true the last point is joined back to the first.
func Polyline(points []Point, closed bool) []image.Point {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return []image.Point{points[0].Pixel()}
	}
	out := make([]image.Point, 0, len(points)*2)
	n := len(points)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		seg := Line(points[i].Pixel(), points[(i+1)%n].Pixel())
		if i > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
