package regionops

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

const (
	// DefaultCutMinArea is the smallest component kept after a cut.
	DefaultCutMinArea = 30
	// DefaultMarkerRadius is the half-width of the disk marker placed at each split seed.
	DefaultMarkerRadius = 40
)

// ErrReassembly wraps a failure recovered while rebuilding a blob after a border edit.
var ErrReassembly = errors.New("border edit reassembly failed")

// Union ORs the masks of blobs onto their joint box. The result is a copy of
// blobs[0] carrying the combined geometry, or nil when there is nothing to
// combine.
func Union(blobs []*blob.Blob) *blob.Blob {
	if len(blobs) == 0 {
		return nil
	}
	combined := blobs[0].Mask()
	for _, b := range blobs[1:] {
		combined = mask.Union(combined, b.Mask())
	}
	if combined.IsEmpty() {
		return nil
	}
	out := blobs[0].Copy()
	out.UpdateUsingMask(combined)
	return out
}

// Subtract removes the pixels of b from a. It returns false and leaves a
// unchanged when nothing of a would remain.
func Subtract(a, b *blob.Blob) bool {
	remaining := mask.Subtract(a.Mask(), b.Mask())
	if remaining.IsEmpty() {
		return false
	}
	a.UpdateUsingMask(remaining)
	return true
}

// Cut erases the open polyline curve from the blob's mask and returns one new
// blob per remaining 4-connected component holding at least minArea pixels,
// largest first. New blobs take the class of b and fresh ids from ids. The
// original blob is not modified.
func Cut(b *blob.Blob, curve []geometry.Point, minArea int, ids blob.IDAllocator) []*blob.Blob {
	m := b.Mask()
	mask.RasterizePolyline(m, curve, false, false)
	return fromRegions(b, mask.ComponentsAbove(m, mask.Four, minArea), ids)
}

// SplitBySeeds partitions the blob with a marker-controlled watershed over its
// distance transform. A disk of the given radius around each seed marks the
// basin it grows from; seeds outside the blob are ignored. One blob is returned
// per non-empty basin, in seed order.
func SplitBySeeds(b *blob.Blob, seeds []geometry.Point, radius int, ids blob.IDAllocator) []*blob.Blob {
	m := b.Mask()
	markers := seedMarkers(m, seeds, radius)
	labels := mask.Watershed(m, markers)

	regions := make([]*mask.Mask, 0, len(seeds))
	for l := 1; l <= len(seeds); l++ {
		if r := mask.FromLabels(labels, m.Box, l); r != nil {
			regions = append(regions, r)
		}
	}
	return fromRegions(b, regions, ids)
}

// seedMarkers builds disk markers and trims each one to the part reachable from
// its seed, so every basin starts from a single connected patch.
func seedMarkers(m *mask.Mask, seeds []geometry.Point, radius int) []int {
	disks := mask.DiskMarkers(m.Box, seeds, radius)
	markers := make([]int, len(disks))
	box := m.Box
	for i, s := range seeds {
		label := i + 1
		patch := mask.Flood(box, s.Pixel(), mask.Four, func(x, y int) bool {
			return m.At(x, y) && disks[(y-box.Top)*box.Width+(x-box.Left)] == label
		})
		for j, v := range patch.Pix {
			if v {
				markers[j] = label
			}
		}
	}
	return markers
}

func fromRegions(src *blob.Blob, regions []*mask.Mask, ids blob.IDAllocator) []*blob.Blob {
	out := make([]*blob.Blob, 0, len(regions))
	for _, r := range regions {
		nb := blob.FromRegion(r, ids.NextID())
		nb.SetClass(src.ClassName, src.ClassColor)
		out = append(out, nb)
	}
	return out
}

// EditBorder reshapes the blob so its border follows stroke. The stroke is
// snapped to the blob, the area it encloses together with the blob is filled,
// the stroke itself is erased, existing holes are restored and only the largest
// 4-connected piece survives.
//
// It reports whether the blob geometry changed. A failure while reassembling the mask is
// recovered, leaves the blob untouched and is returned wrapped in ErrReassembly.
func EditBorder(b *blob.Blob, stroke []geometry.Point) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			changed = false
			err = errors.Wrap(ErrReassembly, fmt.Sprint(r))
		}
	}()

	path := borderStroke(b, stroke)
	if len(path) < 2 {
		return false, nil
	}

	orig := b.Mask()
	canvas := mask.New(geometry.Union(orig.Box, mask.PointsToBoundingBox(path, 2)))
	mask.Paint(canvas, orig, true)
	holes := mask.Subtract(mask.FillHoles(canvas), canvas)

	drawn := canvas.Clone()
	mask.RasterizePolyline(drawn, path, true, false)
	result := mask.FillHoles(drawn)
	mask.RasterizePolyline(result, path, false, false)
	mask.Paint(result, holes, false)

	largest := mask.LargestComponent(result, mask.Four)
	if largest == nil || largest.Equal(orig) {
		return false, nil
	}
	b.UpdateUsingMask(largest)
	return true, nil
}

// borderStroke snaps stroke to the blob and extends the interior run by the
// neighbouring outside point on each end, so the drawn path crosses the border.
func borderStroke(b *blob.Blob, stroke []geometry.Point) []geometry.Point {
	inner := b.SnapCurveToBorder(stroke)
	if inner == nil {
		return nil
	}
	first := 0
	for i, p := range stroke {
		if b.ContainsPoint(p.X, p.Y) {
			first = i
			break
		}
	}
	last := first + len(inner) - 1

	path := make([]geometry.Point, 0, len(inner)+2)
	if first > 0 {
		path = append(path, stroke[first-1])
	}
	path = append(path, inner...)
	if last+1 < len(stroke) {
		path = append(path, stroke[last+1])
	}
	return path
}
