package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

func TestPaintIsIdempotent(t *testing.T) {
	src := FromRows([][]uint8{{1, 0, 1}, {0, 1, 0}}, 2, 2)
	dst := JointCanvas(src.Box, box(0, 0, 3, 3))
	Paint(dst, src, true)
	once := dst.Clone()
	Paint(dst, src, true)
	assert.True(t, once.Equal(dst))
	assert.Equal(t, 3, dst.Count())
}

func TestPaintErase(t *testing.T) {
	dst := Filled(box(0, 0, 4, 4))
	Paint(dst, Filled(box(1, 1, 2, 2)), false)
	assert.Equal(t, 12, dst.Count())
	assert.False(t, dst.At(1, 1))
	assert.True(t, dst.At(0, 0))
}

func TestPaintDisjointIsNoop(t *testing.T) {
	dst := New(box(0, 0, 4, 4))
	Paint(dst, Filled(box(0, 4, 4, 4)), true)
	assert.True(t, dst.IsEmpty())
}

func TestReplaceOverwritesFootprint(t *testing.T) {
	dst := Filled(box(0, 0, 4, 4))
	src := New(box(2, 2, 4, 4))
	src.Set(3, 3, true)
	Replace(dst, src)
	assert.Equal(t, 16-4+1, dst.Count())
	assert.True(t, dst.At(3, 3))
	assert.False(t, dst.At(2, 2))
}

func TestSubtractSelfIsEmpty(t *testing.T) {
	m := FromRows([][]uint8{{1, 1, 0}, {0, 1, 1}}, 3, 7)
	assert.True(t, Subtract(m, m).IsEmpty())
}

func TestUnion(t *testing.T) {
	a := Filled(box(0, 0, 10, 10))
	b := Filled(box(0, 20, 10, 10))
	u := Union(a, b)
	assert.Equal(t, geometry.Union(a.Box, b.Box), u.Box)
	assert.Equal(t, 200, u.Count())
}

func TestIntersect(t *testing.T) {
	a := Filled(box(0, 0, 10, 10))
	b := Filled(box(5, 5, 10, 10))

	got := Intersect(a, b)
	require.NotNil(t, got)
	assert.Equal(t, box(5, 5, 5, 5), got.Box)
	assert.Equal(t, 25, got.Count())

	assert.Nil(t, Intersect(a, Filled(box(0, 10, 3, 3))), "edge-touching boxes do not intersect")
}

func TestRasterizePoints(t *testing.T) {
	m := New(box(0, 0, 5, 5))
	RasterizePoints(m, []geometry.Point{{X: 1.7, Y: 2.2}, {X: 10, Y: 10}, {X: -0.5, Y: 1}}, true)
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.At(1, 2))
}

func TestRasterizePolyline(t *testing.T) {
	m := New(box(0, 0, 10, 10))
	pts := []geometry.Point{{X: 1, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 8}, {X: 1, Y: 8}}

	RasterizePolyline(m, pts, true, true)
	assert.Equal(t, 28, m.Count())
	assert.True(t, m.At(1, 5), "closing edge is drawn")

	open := New(box(0, 0, 10, 10))
	RasterizePolyline(open, pts, true, false)
	assert.Equal(t, 22, open.Count())
	assert.False(t, open.At(1, 5))
}

func TestPointsToBoundingBox(t *testing.T) {
	got := PointsToBoundingBox([]geometry.Point{{X: 3, Y: 4}, {X: 6, Y: 9}}, 2)
	assert.Equal(t, box(2, 1, 8, 10), got)
}
