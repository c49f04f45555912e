package blob

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/reef-annotator-mcp/internal/contour"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// DefaultClassName is the class assigned to blobs nobody has classified yet.
const DefaultClassName = "Empty"

// DefaultClassColor is the colour of DefaultClassName.
var DefaultClassColor = colorful.Color{R: 1, G: 1, B: 1}

// IDAllocator hands out fresh blob ids.
type IDAllocator interface {
	NextID() int
}

// Blob is one annotated region.
type Blob struct {
	ID         int
	Name       string
	ClassName  string
	ClassColor colorful.Color
	Note       string

	// GroupID is a non-owning reference to the group holding this blob, or uuid.Nil.
	GroupID uuid.UUID

	bbox          geometry.BoundingBox
	contour       []geometry.Point
	innerContours [][]geometry.Point
	area          int
	perimeter     float64
	centroid      geometry.Point
}

// FromRegion builds a Blob whose geometry derives entirely from region, a single
// connected foreground component placed by region.Box.
func FromRegion(region *mask.Mask, id int) *Blob {
	b := &Blob{
		ID:         id,
		Name:       instanceName(id),
		ClassName:  DefaultClassName,
		ClassColor: DefaultClassColor,
	}
	b.UpdateUsingMask(region)
	return b
}

// AssignID gives the blob a new id and the matching default instance name.
func (b *Blob) AssignID(id int) {
	b.ID = id
	b.Name = instanceName(id)
}

func instanceName(id int) string {
	return fmt.Sprintf("coral%d", id)
}

// BBox returns the bounding box of the outer contour's pixels.
func (b *Blob) BBox() geometry.BoundingBox { return b.bbox }

// Contour returns a copy of the outer contour.
func (b *Blob) Contour() []geometry.Point {
	return append([]geometry.Point(nil), b.contour...)
}

// InnerContours returns a copy of the holes.
func (b *Blob) InnerContours() [][]geometry.Point {
	return copyContours(b.innerContours)
}

// Area returns the number of foreground pixels.
func (b *Blob) Area() int { return b.area }

// Perimeter returns the length of the outer contour. Holes are not included.
func (b *Blob) Perimeter() float64 { return b.perimeter }

// Centroid returns the mean pixel position in global coordinates.
func (b *Blob) Centroid() geometry.Point { return b.centroid }

// Mask rebuilds the raster mask from the stored contours. The result is sized to
// BBox and is never cached.
func (b *Blob) Mask() *mask.Mask {
	return contour.ContoursToMask(b.contour, b.innerContours, b.bbox)
}

// UpdateUsingMask replaces the blob geometry with m. Every derived attribute is
// recomputed from the mask: the box shrinks to the foreground extent, contours
// are traced, and area, perimeter and centroid follow. Area and centroid are
// measured on the mask the contours rebuild, so dropped holes count as filled.
//
// It panics when m is empty; callers must check IsEmpty first.
func (b *Blob) UpdateUsingMask(m *mask.Mask) {
	tight, ok := m.Tight()
	if !ok {
		panic("blob: update with an empty mask")
	}
	outer, inner := contour.MaskToContours(tight)

	b.bbox = tight.Box
	b.contour = outer
	b.innerContours = inner
	rebuilt := contour.ContoursToMask(outer, inner, tight.Box)
	b.area = rebuilt.Count()
	b.perimeter = geometry.Perimeter(outer)
	b.centroid = rebuilt.Centroid()
}

// Copy returns a deep copy of the geometry and metadata. The copy does not
// belong to any group.
func (b *Blob) Copy() *Blob {
	c := *b
	c.GroupID = uuid.Nil
	c.contour = append([]geometry.Point(nil), b.contour...)
	c.innerContours = copyContours(b.innerContours)
	return &c
}

// SetClass assigns the semantic class and its display colour.
func (b *Blob) SetClass(name string, c colorful.Color) {
	b.ClassName = name
	b.ClassColor = c
}

// ContainsPoint reports whether (x, y) lies inside the outer contour or inside
// a disjoint piece. Holes are not excluded.
func (b *Blob) ContainsPoint(x, y float64) bool {
	if !inBoxF(b.bbox, x, y) {
		return false
	}
	p := geometry.Point{X: x, Y: y}
	if geometry.PointInPolygon(p, b.contour) {
		return true
	}
	outerPositive := geometry.SignedArea(b.contour) > 0
	for _, c := range b.innerContours {
		if (geometry.SignedArea(c) > 0) == outerPositive && geometry.PointInPolygon(p, c) {
			return true
		}
	}
	return false
}

// inBoxF is a cheap rejection test; contours lie within half a pixel of the box.
func inBoxF(box geometry.BoundingBox, x, y float64) bool {
	return x >= float64(box.Left)-1 && x <= float64(box.Right()) &&
		y >= float64(box.Top)-1 && y <= float64(box.Bottom())
}

func copyContours(cs [][]geometry.Point) [][]geometry.Point {
	if cs == nil {
		return nil
	}
	out := make([][]geometry.Point, len(cs))
	for i, c := range cs {
		out[i] = append([]geometry.Point(nil), c...)
	}
	return out
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob %d (%s): area=%d bbox=%s", b.ID, b.ClassName, b.area, b.bbox)
}
