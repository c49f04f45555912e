package geometry

import "math"

// Perimeter returns the length of the closed polygon, including the closing edge.
func Perimeter(poly []Point) float64 {
	if len(poly) < 2 {
		return 0
	}
	var total float64
	for i := range poly {
		total += poly[i].Dist(poly[(i+1)%len(poly)])
	}
	return total
}

// PointInPolygon reports whether p lies inside the implicitly closed polygon,
// using the even-odd rule with half-open edge spans.
func PointInPolygon(p Point, poly []Point) bool {
	inside := false
	n := len(poly)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SignedArea returns the shoelace area of the implicitly closed polygon. Its
// sign gives the winding direction; loops traced around the same foreground
// side share a sign.
func SignedArea(poly []Point) float64 {
	var sum float64
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Translate returns a copy of points shifted by (dx, dy).
func Translate(points []Point, dx, dy float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// RemoveCollinear drops vertices lying exactly on the line through their
// neighbours in a closed polygon. The shape is unchanged.
func RemoveCollinear(poly []Point) []Point {
	if len(poly) < 4 {
		return append([]Point(nil), poly...)
	}
	out := make([]Point, 0, len(poly))
	n := len(poly)
	for i := 0; i < n; i++ {
		prev := poly[(i+n-1)%n]
		cur := poly[i]
		next := poly[(i+1)%n]
		if cross(prev, cur, next) == 0 {
			continue
		}
		out = append(out, cur)
	}
	if len(out) < 3 {
		return append([]Point(nil), poly...)
	}
	return out
}

// Simplify approximates a closed polygon with the Douglas-Peucker algorithm.
// Vertices closer than tolerance to the simplified outline are removed.
func Simplify(poly []Point, tolerance float64) []Point {
	if len(poly) < 4 || tolerance <= 0 {
		return append([]Point(nil), poly...)
	}
	// Split the ring at the vertex farthest from the first one.
	far := 0
	best := -1.0
	for i, p := range poly {
		if d := p.Dist(poly[0]); d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return append([]Point(nil), poly...)
	}
	first := append([]Point(nil), poly[:far+1]...)
	second := append(append([]Point(nil), poly[far:]...), poly[0])

	a := douglasPeucker(first, tolerance)
	b := douglasPeucker(second, tolerance)

	out := make([]Point, 0, len(a)+len(b))
	out = append(out, a[:len(a)-1]...)
	out = append(out, b[:len(b)-1]...)
	if len(out) < 3 {
		return append([]Point(nil), poly...)
	}
	return out
}

func douglasPeucker(pts []Point, tolerance float64) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}
	first, last := pts[0], pts[len(pts)-1]
	idx := 0
	dmax := 0.0
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDistance(pts[i], first, last); d > dmax {
			dmax = d
			idx = i
		}
	}
	if dmax <= tolerance {
		return []Point{first, last}
	}
	left := douglasPeucker(pts[:idx+1], tolerance)
	right := douglasPeucker(pts[idx:], tolerance)
	return append(left[:len(left)-1], right...)
}

func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}
