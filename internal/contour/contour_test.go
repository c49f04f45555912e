package contour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

func box(top, left, w, h int) geometry.BoundingBox { return geometry.NewBoundingBox(top, left, w, h) }

func roundTrip(t *testing.T, m *mask.Mask) (outer []geometry.Point, inner [][]geometry.Point) {
	t.Helper()
	outer, inner = MaskToContours(m)
	got := ContoursToMask(outer, inner, m.Box)
	require.True(t, got.Equal(m), "contours must reproduce the mask exactly")
	return outer, inner
}

func TestSquareRoundTrip(t *testing.T) {
	m := mask.Filled(box(5, 5, 10, 10))
	outer, inner := roundTrip(t, m)
	assert.Empty(t, inner)
	for _, p := range outer {
		assert.True(t, p.X >= 4.5 && p.X <= 14.5 && p.Y >= 4.5 && p.Y <= 14.5, "vertex %v off the pixel border", p)
	}
}

func TestShapesRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rows [][]uint8
	}{
		{"single pixel", [][]uint8{{1}}},
		{"line", [][]uint8{{1, 1, 1, 1, 1}}},
		{"l shape", [][]uint8{
			{1, 0, 0},
			{1, 0, 0},
			{1, 1, 1},
		}},
		{"diagonal", [][]uint8{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		}},
		{"staircase", [][]uint8{
			{1, 1, 0, 0, 0},
			{1, 1, 1, 0, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 1, 1, 1},
			{0, 0, 0, 1, 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, mask.FromRows(tt.rows, 3, 8))
		})
	}
}

func TestTouchingBorderRoundTrip(t *testing.T) {
	m := mask.New(box(0, 0, 8, 8))
	mask.Paint(m, mask.Filled(box(0, 0, 8, 3)), true)
	mask.Paint(m, mask.Filled(box(0, 0, 3, 8)), true)
	roundTrip(t, m)
}

func TestHoleIsReported(t *testing.T) {
	m := mask.Filled(box(0, 0, 20, 20))
	mask.Paint(m, mask.Filled(box(7, 7, 6, 6)), false)

	_, inner := roundTrip(t, m)
	require.Len(t, inner, 1)
	for _, p := range inner[0] {
		assert.True(t, p.X >= 6.5 && p.X <= 12.5 && p.Y >= 6.5 && p.Y <= 12.5, "hole vertex %v", p)
	}
}

func TestTinyHoleIsDropped(t *testing.T) {
	m := mask.Filled(box(0, 0, 10, 10))
	m.Set(5, 5, false)

	outer, inner := MaskToContours(m)
	assert.Empty(t, inner)
	assert.Equal(t, 100, ContoursToMask(outer, inner, m.Box).Count())
}

func TestDisjointRegionsRoundTrip(t *testing.T) {
	m := mask.New(box(0, 0, 30, 10))
	mask.Paint(m, mask.Filled(box(0, 0, 10, 10)), true)
	mask.Paint(m, mask.Filled(box(0, 20, 10, 10)), true)

	_, inner := roundTrip(t, m)
	assert.Len(t, inner, 1, "the second region is carried as a secondary loop")
}

func TestSmallDisjointPiecesAreKept(t *testing.T) {
	m := mask.New(box(0, 0, 30, 12))
	mask.Paint(m, mask.Filled(box(0, 0, 10, 10)), true)
	mask.Paint(m, mask.Filled(box(2, 20, 3, 3)), true)
	m.Set(27, 10, true)

	_, inner := roundTrip(t, m)
	assert.Len(t, inner, 2, "pieces shorter than MinHoleVertices still count")
	assert.Equal(t, 110, m.Count())
}

func TestTinyHoleDroppedNextToPiece(t *testing.T) {
	m := mask.New(box(0, 0, 30, 10))
	mask.Paint(m, mask.Filled(box(0, 0, 10, 10)), true)
	mask.Paint(m, mask.Filled(box(0, 20, 3, 3)), true)
	m.Set(5, 5, false)

	outer, inner := MaskToContours(m)
	require.Len(t, inner, 1)
	got := ContoursToMask(outer, inner, m.Box)
	assert.Equal(t, 109, got.Count())
	assert.True(t, got.At(5, 5), "the one-pixel hole is filled")
	assert.True(t, got.At(21, 1))
}

func TestOuterIsSimplifiedWhenExact(t *testing.T) {
	// A disk has a long staircase outline that simplification shortens.
	m := mask.New(box(0, 0, 41, 41))
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			if (x-20)*(x-20)+(y-20)*(y-20) <= 400 {
				m.Set(x, y, true)
			}
		}
	}
	padded := m.Pad(Padding)
	loops := traceLoops(padded)
	require.Len(t, loops, 1)

	outer, _ := roundTrip(t, m)
	assert.LessOrEqual(t, len(outer), len(geometry.RemoveCollinear(loops[0])))
}

func TestEmptyMaskPanics(t *testing.T) {
	assert.Panics(t, func() { MaskToContours(mask.New(box(0, 0, 4, 4))) })
}

func TestFillPolygon(t *testing.T) {
	m := mask.New(box(0, 0, 10, 10))
	FillPolygon(m, []geometry.Point{{X: 1.5, Y: 1.5}, {X: 5.5, Y: 1.5}, {X: 5.5, Y: 4.5}, {X: 1.5, Y: 4.5}}, true)
	assert.Equal(t, 12, m.Count())
	assert.True(t, m.At(2, 2))
	assert.False(t, m.At(1, 2))

	TogglePolygon(m, []geometry.Point{{X: 1.5, Y: 1.5}, {X: 3.5, Y: 1.5}, {X: 3.5, Y: 6.5}, {X: 1.5, Y: 6.5}})
	assert.Equal(t, 12-6+4, m.Count())
	assert.False(t, m.At(2, 2))
	assert.True(t, m.At(2, 5))
}
