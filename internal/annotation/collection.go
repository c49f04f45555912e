package annotation

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
	"github.com/ironsheep/reef-annotator-mcp/internal/regionops"
)

// ErrBlobNotFound is returned when an id names no blob of the collection.
var ErrBlobNotFound = errors.New("blob not found")

// Options tunes the geometric thresholds used by the collection.
type Options struct {
	// AreaFraction of the reference area below which imported components are dropped.
	AreaFraction float64
	// CutMinArea is the smallest piece kept after a cut.
	CutMinArea int
	// MarkerRadius is the disk half-width used when splitting by seeds.
	MarkerRadius int
	// MaxCurveFill rejects closed curves filling more of their box than this.
	MaxCurveFill float64
	// Workers bounds the batch blob construction pool.
	Workers int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		AreaFraction: 0.2,
		CutMinArea:   regionops.DefaultCutMinArea,
		MarkerRadius: regionops.DefaultMarkerRadius,
		MaxCurveFill: blob.DefaultMaxCurveFill,
		Workers:      runtime.NumCPU(),
	}
}

// Collection owns the blobs of one image.
type Collection struct {
	blobs  []*blob.Blob
	groups map[uuid.UUID]*Group
	lastID int
	opts   Options
	logger *slog.Logger
}

// New creates an empty collection. A nil logger discards log output.
func New(opts Options, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Collection{
		groups: make(map[uuid.UUID]*Group),
		opts:   opts,
		logger: logger,
	}
}

// Options returns the thresholds in use.
func (c *Collection) Options() Options { return c.opts }

// NextID returns a fresh id. Ids are never reused, even after removals.
func (c *Collection) NextID() int {
	c.lastID++
	return c.lastID
}

// Len returns the number of blobs.
func (c *Collection) Len() int { return len(c.blobs) }

// Blobs returns the blobs in insertion order. The slice is a copy; the blobs are not.
func (c *Collection) Blobs() []*blob.Blob {
	return append([]*blob.Blob(nil), c.blobs...)
}

// Blob returns the blob with the given id.
func (c *Collection) Blob(id int) (*blob.Blob, error) {
	for _, b := range c.blobs {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.Wrapf(ErrBlobNotFound, "id %d", id)
}

// AddBlob appends b. Adding a blob that is already present is a no-op.
func (c *Collection) AddBlob(b *blob.Blob) {
	if c.indexOf(b) >= 0 {
		return
	}
	if b.ID > c.lastID {
		c.lastID = b.ID
	}
	c.blobs = append(c.blobs, b)
}

// RemoveBlob drops b from the collection and from its group. It reports
// whether b was present.
func (c *Collection) RemoveBlob(b *blob.Blob) bool {
	i := c.indexOf(b)
	if i < 0 {
		return false
	}
	c.blobs = append(c.blobs[:i], c.blobs[i+1:]...)
	c.leaveGroup(b)
	return true
}

// Replace removes old and adds its replacements, as done after a cut or split.
func (c *Collection) Replace(old *blob.Blob, replacements ...*blob.Blob) {
	c.RemoveBlob(old)
	for _, b := range replacements {
		c.AddBlob(b)
	}
}

func (c *Collection) indexOf(b *blob.Blob) int {
	for i, x := range c.blobs {
		if x == b {
			return i
		}
	}
	return -1
}

// ClickedBlob returns the smallest blob whose outer contour contains (x, y),
// or nil. Ties keep the first blob found.
func (c *Collection) ClickedBlob(x, y float64) *blob.Blob {
	var best *blob.Blob
	for _, b := range c.blobs {
		if !b.ContainsPoint(x, y) {
			continue
		}
		if best == nil || b.Area() < best.Area() {
			best = b
		}
	}
	return best
}

// CreateBlobsFromMask turns a raw segmentation mask into blobs. Holes are
// filled, 8-connected components are labelled and those smaller than
// AreaFraction of referenceArea are dropped. Each survivor gets a fresh id in
// raster order. The blobs are returned, not added.
func (c *Collection) CreateBlobsFromMask(raw *mask.Mask, referenceArea int) []*blob.Blob {
	if raw == nil || raw.IsEmpty() {
		return nil
	}
	threshold := int(c.opts.AreaFraction * float64(referenceArea))
	comps := mask.Components(mask.FillHoles(raw), mask.Eight)

	kept := comps[:0]
	for _, m := range comps {
		if m.Count() >= threshold {
			kept = append(kept, m)
		}
	}
	blobs := c.buildBlobs(kept)
	for _, b := range blobs {
		b.AssignID(c.NextID())
	}
	c.logger.Debug("blobs created from mask",
		slog.Int("components", len(comps)),
		slog.Int("kept", len(blobs)),
		slog.Int("threshold", threshold))
	return blobs
}

// CreateBlobFromClosedCurve builds a blob enclosed by a freehand closed curve,
// or returns nil when the curve encloses nothing usable. The blob is not added.
func (c *Collection) CreateBlobFromClosedCurve(points []geometry.Point) *blob.Blob {
	region := blob.ClosedCurveRegion(points, c.opts.MaxCurveFill)
	if region == nil {
		c.logger.Debug("closed curve rejected", slog.Int("points", len(points)))
		return nil
	}
	return blob.FromRegion(region, c.NextID())
}

// Union merges the blobs with the given ids into the first one. The others are
// removed. It returns the merged blob.
func (c *Collection) Union(ids ...int) (*blob.Blob, error) {
	parts, err := c.lookup(ids)
	if err != nil {
		return nil, err
	}
	merged := regionops.Union(parts)
	if merged == nil {
		return nil, nil
	}
	for _, p := range parts {
		c.RemoveBlob(p)
	}
	c.AddBlob(merged)
	return merged, nil
}

// Subtract erases blob b from blob a. It reports false when a would vanish,
// in which case a is unchanged.
func (c *Collection) Subtract(a, b int) (bool, error) {
	parts, err := c.lookup([]int{a, b})
	if err != nil {
		return false, err
	}
	return regionops.Subtract(parts[0], parts[1]), nil
}

// Cut splits the blob along curve and replaces it with the surviving pieces.
// When the cut leaves nothing above CutMinArea the blob is kept.
func (c *Collection) Cut(id int, curve []geometry.Point) ([]*blob.Blob, error) {
	b, err := c.Blob(id)
	if err != nil {
		return nil, err
	}
	pieces := regionops.Cut(b, curve, c.opts.CutMinArea, c)
	if len(pieces) == 0 {
		return nil, nil
	}
	c.Replace(b, pieces...)
	c.logger.Debug("blob cut", slog.Int("id", id), slog.Int("pieces", len(pieces)))
	return pieces, nil
}

// Split partitions the blob by watershed from seeds and replaces it with the parts.
func (c *Collection) Split(id int, seeds []geometry.Point) ([]*blob.Blob, error) {
	b, err := c.Blob(id)
	if err != nil {
		return nil, err
	}
	parts := regionops.SplitBySeeds(b, seeds, c.opts.MarkerRadius, c)
	if len(parts) == 0 {
		return nil, nil
	}
	c.Replace(b, parts...)
	c.logger.Debug("blob split", slog.Int("id", id), slog.Int("parts", len(parts)))
	return parts, nil
}

// EditBorder reshapes the blob along stroke. Reassembly failures are logged and
// reported as no change.
func (c *Collection) EditBorder(id int, stroke []geometry.Point) (bool, error) {
	b, err := c.Blob(id)
	if err != nil {
		return false, err
	}
	changed, rerr := regionops.EditBorder(b, stroke)
	if rerr != nil {
		c.logger.Debug("border edit skipped", slog.Int("id", id), slog.String("error", rerr.Error()))
	}
	return changed, nil
}

func (c *Collection) lookup(ids []int) ([]*blob.Blob, error) {
	if len(ids) == 0 {
		return nil, errors.New("no blob ids given")
	}
	out := make([]*blob.Blob, len(ids))
	for i, id := range ids {
		b, err := c.Blob(id)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
