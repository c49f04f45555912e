package contour

import (
	"math"
	"sort"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// ContoursToMask rasterizes the outer polygon as filled and toggles each inner
// polygon, producing a mask sized exactly to box. Holes inside the outer contour
// are subtracted; secondary loops outside it (left by unions of disjoint regions)
// are added back. A pixel belongs to a polygon when its center lies inside it.
func ContoursToMask(outer []geometry.Point, inner [][]geometry.Point, box geometry.BoundingBox) *mask.Mask {
	m := mask.New(box)
	FillPolygon(m, outer, true)
	for _, hole := range inner {
		TogglePolygon(m, hole)
	}
	return m
}

// FillPolygon writes value into every pixel of m whose center lies inside the
// implicitly closed polygon (even-odd rule). Pixels outside m are ignored.
func FillPolygon(m *mask.Mask, poly []geometry.Point, value bool) {
	scan(m.Box, poly, func(x, y int) { m.Set(x, y, value) })
}

// TogglePolygon inverts every pixel of m whose center lies inside the polygon.
func TogglePolygon(m *mask.Mask, poly []geometry.Point) {
	scan(m.Box, poly, func(x, y int) { m.Set(x, y, !m.At(x, y)) })
}

// scan calls fn for each pixel of box whose center is inside poly. Edge spans are
// half-open in y, and a center lying exactly on a left crossing is inside.
func scan(box geometry.BoundingBox, poly []geometry.Point, fn func(x, y int)) {
	if len(poly) < 3 || box.Empty() {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(int(math.Ceil(minY)), box.Top)
	y1 := min(int(math.Floor(maxY)), box.Bottom()-1)

	xs := make([]float64, 0, 16)
	n := len(poly)
	for y := y0; y <= y1; y++ {
		fy := float64(y)
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if (a.Y <= fy && fy < b.Y) || (b.Y <= fy && fy < a.Y) {
				xs = append(xs, a.X+(fy-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			from := max(int(math.Ceil(xs[k])), box.Left)
			to := min(int(math.Ceil(xs[k+1]))-1, box.Right()-1)
			for x := from; x <= to; x++ {
				fn(x, y)
			}
		}
	}
}
