package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundingBox(t *testing.T) {
	b := NewBoundingBox(5, 7, 10, 4)
	assert.Equal(t, 17, b.Right())
	assert.Equal(t, 9, b.Bottom())
	assert.Equal(t, 40, b.Area())
	assert.False(t, b.Empty())

	neg := NewBoundingBox(0, 0, -3, 2)
	assert.Equal(t, 0, neg.Width)
	assert.True(t, neg.Empty())
}

func TestBoundingBox_ContainsPixel(t *testing.T) {
	b := NewBoundingBox(0, 0, 3, 2)
	assert.True(t, b.ContainsPixel(0, 0))
	assert.True(t, b.ContainsPixel(2, 1))
	assert.False(t, b.ContainsPixel(3, 0))
	assert.False(t, b.ContainsPixel(0, 2))
	assert.False(t, b.ContainsPixel(-1, 0))
}

func TestBoundingBox_Rect(t *testing.T) {
	b := NewBoundingBox(2, 3, 4, 5)
	assert.Equal(t, image.Rect(3, 2, 7, 7), b.Rect())
	assert.Equal(t, b, FromRect(b.Rect()))
	assert.Equal(t, NewBoundingBox(1, 2, 6, 7), b.Pad(1))
}

func TestUnion(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	b := NewBoundingBox(0, 20, 10, 10)

	tests := []struct {
		name  string
		boxes []BoundingBox
		want  BoundingBox
	}{
		{"none", nil, BoundingBox{}},
		{"single", []BoundingBox{b}, b},
		{"disjoint", []BoundingBox{a, b}, NewBoundingBox(0, 0, 30, 10)},
		{"nested", []BoundingBox{a, NewBoundingBox(2, 2, 3, 3)}, a},
		{"three", []BoundingBox{a, b, NewBoundingBox(-5, 5, 1, 1)}, NewBoundingBox(-5, 0, 30, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Union(tt.boxes...))
		})
	}
}

func TestUnionContainsInputs(t *testing.T) {
	boxes := []BoundingBox{
		NewBoundingBox(0, 0, 5, 5),
		NewBoundingBox(3, 3, 5, 5),
		NewBoundingBox(-10, 40, 1, 20),
		NewBoundingBox(100, -7, 0, 0),
	}
	for _, a := range boxes {
		for _, b := range boxes {
			u := Union(a, b)
			assert.True(t, Contains(u, a), "union %s should contain %s", u, a)
			assert.True(t, Contains(u, b), "union %s should contain %s", u, b)
		}
	}
}

func TestIntersects(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	tests := []struct {
		name string
		b    BoundingBox
		want bool
	}{
		{"overlap", NewBoundingBox(5, 5, 10, 10), true},
		{"inside", NewBoundingBox(2, 2, 2, 2), true},
		{"touching right edge", NewBoundingBox(0, 10, 5, 5), false},
		{"touching bottom edge", NewBoundingBox(10, 0, 5, 5), false},
		{"gap", NewBoundingBox(0, 12, 5, 5), false},
		{"one pixel overlap", NewBoundingBox(9, 9, 5, 5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersects(a, tt.b))
			assert.Equal(t, tt.want, Intersects(tt.b, a), "intersection must be symmetric")
		})
	}
}

func TestIntersection(t *testing.T) {
	got, ok := Intersection(NewBoundingBox(0, 0, 10, 10), NewBoundingBox(5, 3, 10, 10))
	assert.True(t, ok)
	assert.Equal(t, NewBoundingBox(5, 3, 7, 5), got)

	_, ok = Intersection(NewBoundingBox(0, 0, 10, 10), NewBoundingBox(0, 10, 10, 10))
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	outer := NewBoundingBox(0, 0, 10, 10)
	assert.True(t, Contains(outer, outer))
	assert.True(t, Contains(outer, NewBoundingBox(2, 2, 8, 8)))
	assert.False(t, Contains(outer, NewBoundingBox(2, 2, 9, 8)))
	assert.False(t, Contains(outer, NewBoundingBox(-1, 0, 2, 2)))
}

func TestFromPointRange(t *testing.T) {
	pts := []Point{{X: 2.5, Y: 3}, {X: 7, Y: 1.2}, {X: 4, Y: 6.7}}

	assert.Equal(t, NewBoundingBox(1, 2, 6, 7), FromPointRange(pts, 0))
	assert.Equal(t, NewBoundingBox(-1, 0, 10, 11), FromPointRange(pts, 2))
	assert.Equal(t, NewBoundingBox(4, 3, 1, 1), FromPointRange([]Point{{X: 3, Y: 4}}, 0))
	assert.Equal(t, BoundingBox{}, FromPointRange(nil, 3))
}
