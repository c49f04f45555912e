package annotation

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// LabelMatchDistance is the largest Lab distance at which a label map pixel is
// attributed to a class colour.
const LabelMatchDistance = 0.05

// Class is a semantic class and its display colour.
type Class struct {
	Name  string
	Color colorful.Color
}

// ImportLabelMap creates one blob per connected region of each class found in
// a colour label map. A pixel belongs to the class whose colour is nearest in
// Lab space, provided it is within LabelMatchDistance; other pixels and fully
// transparent ones are background. The new blobs are added and returned.
func (c *Collection) ImportLabelMap(img image.Image, classes []Class) ([]*blob.Blob, error) {
	if len(classes) == 0 {
		return nil, errors.New("import label map: no classes given")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.New("import label map: empty image")
	}

	box := geometry.FromRect(bounds)
	layers := make([]*mask.Mask, len(classes))
	for i := range layers {
		layers[i] = mask.New(box)
	}

	cache := make(map[[4]uint32]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			key := [4]uint32{r, g, b, a}
			idx, ok := cache[key]
			if !ok {
				idx = matchClass(img.At(x, y), classes)
				cache[key] = idx
			}
			if idx >= 0 {
				layers[idx].Set(x, y, true)
			}
		}
	}

	var created []*blob.Blob
	for i, layer := range layers {
		if layer.IsEmpty() {
			continue
		}
		blobs := c.buildBlobs(mask.Components(layer, mask.Eight))
		for _, b := range blobs {
			b.AssignID(c.NextID())
			b.SetClass(classes[i].Name, classes[i].Color)
			c.AddBlob(b)
		}
		created = append(created, blobs...)
	}
	c.logger.Info("label map imported",
		slog.Int("classes", len(classes)),
		slog.Int("blobs", len(created)))
	return created, nil
}

func matchClass(px color.Color, classes []Class) int {
	col, ok := colorful.MakeColor(px)
	if !ok {
		return -1
	}
	best, bestDist := -1, LabelMatchDistance
	for i, cl := range classes {
		if d := col.DistanceLab(cl.Color); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
