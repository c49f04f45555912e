package mask

import (
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// FromImage binarizes a raster produced by an external segmentation tool and
// places it with its top-left pixel at (offsetX, offsetY). Any opaque pixel with
// a non-zero channel is foreground, so both 0/1 and 0/255 encodings work.
func FromImage(img image.Image, offsetX, offsetY int) *Mask {
	src := clone.AsShallowRGBA(img)
	b := src.Bounds()
	m := New(geometry.NewBoundingBox(offsetY, offsetX, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			px := src.Pix[i : i+4 : i+4]
			m.Pix[y*b.Dx()+x] = px[3] != 0 && (px[0]|px[1]|px[2]) != 0
		}
	}
	return m
}
