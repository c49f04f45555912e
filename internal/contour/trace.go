package contour

import (
	"math"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

const (
	// Padding is the number of background pixels added around a mask before tracing.
	Padding = 2
	// ApproxTolerance is the Douglas-Peucker tolerance, in pixels, for outer contours.
	ApproxTolerance = 1.2
	// MinHoleVertices is the minimum traced length for a hole loop to be kept.
	// Shorter holes are single-pixel noise. Disjoint pieces are always kept.
	MinHoleVertices = 20
)

// MaskToContours traces m and returns its outer contour and holes in global
// coordinates. When several loops are found the longest is the outer contour.
// The others are inner contours: loops wound like the outer one are disjoint
// pieces and are always kept, loops wound the other way are holes and are kept
// when they have at least MinHoleVertices vertices.
//
// It panics when m has no foreground pixel; callers must check first.
func MaskToContours(m *mask.Mask) (outer []geometry.Point, inner [][]geometry.Point) {
	if m.IsEmpty() {
		panic("contour: cannot trace an empty mask")
	}
	padded := m.Pad(Padding)
	loops := traceLoops(padded)
	if len(loops) == 0 {
		panic("contour: no contour found")
	}

	dx := float64(padded.Box.Left)
	dy := float64(padded.Box.Top)

	// The loop enclosing the most area is always an outer boundary and fixes
	// which winding means foreground.
	areas := make([]float64, len(loops))
	widest := 0
	for i, l := range loops {
		areas[i] = geometry.SignedArea(l)
		if math.Abs(areas[i]) > math.Abs(areas[widest]) {
			widest = i
		}
	}
	isPiece := func(i int) bool { return (areas[i] > 0) == (areas[widest] > 0) }

	longest := widest
	for i, l := range loops {
		if isPiece(i) && len(l) > len(loops[longest]) {
			longest = i
		}
	}
	outer = geometry.Translate(loops[longest], dx, dy)
	for i, l := range loops {
		if i == longest || (!isPiece(i) && len(l) < MinHoleVertices) {
			continue
		}
		inner = append(inner, geometry.RemoveCollinear(geometry.Translate(l, dx, dy)))
	}

	exact := geometry.RemoveCollinear(outer)
	if len(loops) == 1 {
		simplified := geometry.Simplify(exact, ApproxTolerance)
		if len(simplified) < len(exact) && ContoursToMask(simplified, nil, m.Box).Equal(ContoursToMask(exact, nil, m.Box)) {
			return simplified, inner
		}
	}
	return exact, inner
}

// edge identifiers: a horizontal edge joins grid points (i,j)-(i+1,j), a
// vertical edge joins (i,j)-(i,j+1). Grid points are pixel centers.
type edgeID int

func hEdge(i, j, w int) edgeID { return edgeID(2 * (j*w + i)) }
func vEdge(i, j, w int) edgeID { return edgeID(2*(j*w+i) + 1) }

func edgePoint(e edgeID, w int) geometry.Point {
	k := int(e) / 2
	i, j := k%w, k/w
	if e%2 == 0 {
		return geometry.Point{X: float64(i) + 0.5, Y: float64(j)}
	}
	return geometry.Point{X: float64(i), Y: float64(j) + 0.5}
}

// traceLoops runs marching squares over the padded mask in local coordinates and
// links the oriented cell segments into closed loops. Saddle cells join the
// foreground diagonal, matching 8-connected regions.
func traceLoops(m *mask.Mask) [][]geometry.Point {
	w, h := m.Box.Width, m.Box.Height
	at := func(i, j int) bool { return m.Pix[j*w+i] }

	next := make(map[edgeID]edgeID)
	order := make([]edgeID, 0, 256)

	for j := 0; j < h-1; j++ {
		for i := 0; i < w-1; i++ {
			tl, tr := at(i, j), at(i+1, j)
			bl, br := at(i, j+1), at(i+1, j+1)
			if tl == tr && tr == br && br == bl {
				continue
			}
			top, bottom := hEdge(i, j, w), hEdge(i, j+1, w)
			left, right := vEdge(i, j, w), vEdge(i+1, j, w)

			var segs [][2]edgeID
			if tl != tr && tr != br && br != bl && bl != tl {
				// Saddle: cut off the two background corners.
				if !tl {
					segs = append(segs, [2]edgeID{left, top}, [2]edgeID{right, bottom})
				} else {
					segs = append(segs, [2]edgeID{top, right}, [2]edgeID{bottom, left})
				}
			} else {
				var ends []edgeID
				if tl != tr {
					ends = append(ends, top)
				}
				if tr != br {
					ends = append(ends, right)
				}
				if br != bl {
					ends = append(ends, bottom)
				}
				if bl != tl {
					ends = append(ends, left)
				}
				segs = append(segs, [2]edgeID{ends[0], ends[1]})
			}

			corners := [4]struct {
				p  geometry.Point
				fg bool
			}{
				{geometry.Point{X: float64(i), Y: float64(j)}, tl},
				{geometry.Point{X: float64(i + 1), Y: float64(j)}, tr},
				{geometry.Point{X: float64(i + 1), Y: float64(j + 1)}, br},
				{geometry.Point{X: float64(i), Y: float64(j + 1)}, bl},
			}
			for _, s := range segs {
				a, b := edgePoint(s[0], w), edgePoint(s[1], w)
				if !foregroundOnLeft(a, b, corners[:]) {
					s[0], s[1] = s[1], s[0]
				}
				next[s[0]] = s[1]
				order = append(order, s[0])
			}
		}
	}

	visited := make(map[edgeID]bool, len(next))
	var loops [][]geometry.Point
	for _, start := range order {
		if visited[start] {
			continue
		}
		var loop []geometry.Point
		for e := start; !visited[e]; {
			visited[e] = true
			loop = append(loop, edgePoint(e, w))
			nx, ok := next[e]
			if !ok {
				break
			}
			e = nx
		}
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// foregroundOnLeft reports whether, walking from a to b, the foreground corners
// of the cell are on the negative-cross side. One side of any segment holds
// corners of a single value; that side decides the answer.
func foregroundOnLeft(a, b geometry.Point, corners []struct {
	p  geometry.Point
	fg bool
}) bool {
	var posFG, posBG, negFG, negBG int
	for _, c := range corners {
		cr := (b.X-a.X)*(c.p.Y-a.Y) - (b.Y-a.Y)*(c.p.X-a.X)
		switch {
		case cr > 0 && c.fg:
			posFG++
		case cr > 0:
			posBG++
		case cr < 0 && c.fg:
			negFG++
		case cr < 0:
			negBG++
		}
	}
	if negBG == 0 && negFG > 0 {
		return true
	}
	if negFG == 0 && negBG > 0 {
		return false
	}
	// Negative side is mixed, so the positive side is homogeneous.
	return posBG > 0 && posFG == 0
}
