package regionops

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

type counter struct{ last int }

func (c *counter) NextID() int {
	c.last++
	return c.last
}

func box(top, left, w, h int) geometry.BoundingBox { return geometry.NewBoundingBox(top, left, w, h) }

func square(top, left, size, id int) *blob.Blob {
	return blob.FromRegion(mask.Filled(box(top, left, size, size)), id)
}

func TestUnionDisjoint(t *testing.T) {
	a := square(0, 0, 10, 1)
	b := square(0, 20, 10, 2)

	u := Union([]*blob.Blob{a, b})
	require.NotNil(t, u)
	assert.Equal(t, 200, u.Area())
	assert.Equal(t, box(0, 0, 30, 10), u.BBox())
	assert.Equal(t, 1, u.ID, "the result keeps the first blob's identity")
	assert.Equal(t, 200, u.Mask().Count())

	assert.Equal(t, 100, a.Area(), "inputs are not modified")
}

func TestUnionOverlapping(t *testing.T) {
	u := Union([]*blob.Blob{square(0, 0, 10, 1), square(5, 5, 10, 2), square(0, 0, 3, 3)})
	require.NotNil(t, u)
	assert.Equal(t, 175, u.Area())
	assert.Nil(t, Union(nil))
}

func TestUnionWithSmallDisjointPiece(t *testing.T) {
	u := Union([]*blob.Blob{square(0, 0, 10, 1), square(0, 20, 3, 2)})
	require.NotNil(t, u)
	assert.Equal(t, 109, u.Area())
	assert.Equal(t, u.Area(), u.Mask().Count())
	assert.True(t, u.ContainsPoint(21, 1))

	require.True(t, Subtract(u, square(0, 40, 5, 3)))
	assert.Equal(t, 109, u.Area(), "a disjoint cutter removes nothing")
	assert.Equal(t, u.Area(), u.Mask().Count())
}

func TestSubtractLeavesHole(t *testing.T) {
	a := square(0, 0, 20, 1)
	b := square(5, 5, 10, 2)

	require.True(t, Subtract(a, b))
	assert.Equal(t, 300, a.Area())
	assert.Len(t, a.InnerContours(), 1)
	assert.Equal(t, box(0, 0, 20, 20), a.BBox())
	assert.Equal(t, 100, b.Area())
}

func TestSubtractEverythingIsRejected(t *testing.T) {
	a := square(0, 0, 10, 1)
	assert.False(t, Subtract(a, a.Copy()))
	assert.Equal(t, 100, a.Area())

	assert.False(t, Subtract(a, square(0, 0, 20, 2)))
	assert.Equal(t, 100, a.Area())
}

func TestSubtractDisjointKeepsShape(t *testing.T) {
	a := square(0, 0, 10, 1)
	require.True(t, Subtract(a, square(50, 50, 5, 2)))
	assert.Equal(t, 100, a.Area())
}

func TestCutInsideDoesNotSeparate(t *testing.T) {
	b := square(10, 10, 20, 1)
	b.SetClass("Acropora", colorful.Color{R: 1})
	ids := &counter{last: 1}

	pieces := Cut(b, []geometry.Point{{X: 12, Y: 15}, {X: 25, Y: 15}}, DefaultCutMinArea, ids)
	require.Len(t, pieces, 1)
	assert.Equal(t, 386, pieces[0].Area())
	assert.Len(t, pieces[0].InnerContours(), 1)
	assert.Equal(t, 2, pieces[0].ID)
	assert.Equal(t, "Acropora", pieces[0].ClassName)
	assert.Equal(t, 400, b.Area(), "the source blob is not modified")
}

func TestShortInteriorCutIsFilled(t *testing.T) {
	b := square(10, 10, 20, 1)
	pieces := Cut(b, []geometry.Point{{X: 15, Y: 15}, {X: 20, Y: 15}}, DefaultCutMinArea, &counter{})
	require.Len(t, pieces, 1)
	assert.Empty(t, pieces[0].InnerContours(), "a six-pixel slit traces too short to be a hole")
	assert.Equal(t, 400, pieces[0].Area())
	assert.Equal(t, pieces[0].Area(), pieces[0].Mask().Count())
}

func TestCutSeparates(t *testing.T) {
	b := square(10, 10, 20, 1)
	ids := &counter{last: 1}

	pieces := Cut(b, []geometry.Point{{X: 5, Y: 20}, {X: 35, Y: 20}}, DefaultCutMinArea, ids)
	require.Len(t, pieces, 2)
	assert.Equal(t, 200, pieces[0].Area())
	assert.Equal(t, 180, pieces[1].Area())
	assert.Equal(t, 2, pieces[0].ID)
	assert.Equal(t, 3, pieces[1].ID)
}

func TestCutDropsSlivers(t *testing.T) {
	b := square(10, 10, 20, 1)
	pieces := Cut(b, []geometry.Point{{X: 5, Y: 11}, {X: 35, Y: 11}}, DefaultCutMinArea, &counter{})
	require.Len(t, pieces, 1, "the one-row strip above the cut is too small")
	assert.Equal(t, 360, pieces[0].Area())
}

func TestSplitBySeeds(t *testing.T) {
	b := blob.FromRegion(mask.Filled(box(0, 0, 60, 20)), 1)
	ids := &counter{last: 1}

	pieces := SplitBySeeds(b, []geometry.Point{{X: 15, Y: 10}, {X: 45, Y: 10}}, 5, ids)
	require.Len(t, pieces, 2)
	assert.Equal(t, 1200, pieces[0].Area()+pieces[1].Area())
	assert.InDelta(t, 600, pieces[0].Area(), 200)
	assert.Less(t, pieces[0].Centroid().X, pieces[1].Centroid().X, "pieces follow seed order")
	assert.Equal(t, 2, pieces[0].ID)
	assert.Equal(t, 3, pieces[1].ID)
}

func TestSplitBySeedsDefaultRadius(t *testing.T) {
	b := blob.FromRegion(mask.Filled(box(0, 0, 90, 20)), 1)
	seeds := []geometry.Point{{X: 15, Y: 10}, {X: 45, Y: 10}, {X: 75, Y: 10}}

	pieces := SplitBySeeds(b, seeds, DefaultMarkerRadius, &counter{})
	require.Len(t, pieces, 3)
	total := 0
	for _, p := range pieces {
		total += p.Area()
		assert.InDelta(t, 600, p.Area(), 100)
	}
	assert.Equal(t, 1800, total)
}

func TestSplitIgnoresSeedsOutside(t *testing.T) {
	b := blob.FromRegion(mask.Filled(box(0, 0, 60, 20)), 1)
	seeds := []geometry.Point{{X: 15, Y: 10}, {X: 200, Y: 200}, {X: 45, Y: 10}}

	pieces := SplitBySeeds(b, seeds, 5, &counter{})
	assert.Len(t, pieces, 2)
}

func TestEditBorderGrows(t *testing.T) {
	b := square(10, 10, 20, 1)
	stroke := []geometry.Point{{X: 15, Y: 12}, {X: 15, Y: 2}, {X: 25, Y: 2}, {X: 25, Y: 12}}

	changed, err := EditBorder(b, stroke)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 400-6+63, b.Area())
	assert.Equal(t, 3, b.BBox().Top)
}

func TestEditBorderTrims(t *testing.T) {
	b := square(10, 10, 20, 1)
	stroke := []geometry.Point{{X: 5, Y: 14}, {X: 12, Y: 14}, {X: 27, Y: 14}, {X: 35, Y: 14}}

	changed, err := EditBorder(b, stroke)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 300, b.Area())
	assert.Equal(t, box(15, 10, 20, 15), b.BBox())
}

func TestEditBorderKeepsHoles(t *testing.T) {
	b := square(10, 10, 30, 1)
	require.True(t, Subtract(b, square(25, 25, 8, 2)))
	stroke := []geometry.Point{{X: 15, Y: 12}, {X: 15, Y: 2}, {X: 25, Y: 2}, {X: 25, Y: 12}}

	changed, err := EditBorder(b, stroke)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Len(t, b.InnerContours(), 1)
	assert.Equal(t, 900-64-6+63, b.Area())
}

func TestEditBorderOutsideIsNoop(t *testing.T) {
	b := square(10, 10, 20, 1)
	changed, err := EditBorder(b, []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 5}})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 400, b.Area())
}
