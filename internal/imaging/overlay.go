package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// OverlayOptions controls RenderOverlay.
type OverlayOptions struct {
	// FillAlpha is the opacity of the class-coloured fill, 0 to 1.
	FillAlpha float64
	// LineWidth of contour outlines in pixels; 0 disables outlines.
	LineWidth float64
	// ShowIDs draws each blob id at its centroid.
	ShowIDs bool
	// Box restricts the output to a work area. The zero box renders the whole image.
	Box geometry.BoundingBox
}

// DefaultOverlayOptions returns a half-transparent fill with 1.5 px outlines.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{FillAlpha: 0.4, LineWidth: 1.5, ShowIDs: true}
}

// OverlayResult contains the rendered overlay.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BlobCount   int    `json:"blob_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOverlay draws blobs over img: a translucent fill in the class colour
// with holes left open, the outer and inner contours as outlines and optionally
// the blob ids.
func RenderOverlay(img image.Image, blobs []*blob.Blob, opts OverlayOptions) (*OverlayResult, error) {
	bounds := img.Bounds()
	if !opts.Box.Empty() {
		clamped, err := ClampWorkArea(img, opts.Box)
		if err != nil {
			return nil, err
		}
		bounds = clamped.Rect()
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot render overlay on an empty image")
	}

	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	drawn := 0
	for _, b := range blobs {
		if !geometry.Intersects(b.BBox(), geometry.FromRect(bounds)) {
			continue
		}
		drawn++
		contours := append([][]geometry.Point{b.Contour()}, b.InnerContours()...)

		if opts.FillAlpha > 0 {
			z.Reset(bounds.Dx(), bounds.Dy())
			for _, c := range contours {
				addPolygon(z, c, bounds.Min)
			}
			z.Draw(dst, bounds, image.NewUniform(withAlpha(b.ClassColor, opts.FillAlpha)), image.Point{})
		}
		if opts.LineWidth > 0 {
			z.Reset(bounds.Dx(), bounds.Dy())
			for _, c := range contours {
				addOutline(z, c, opts.LineWidth, bounds.Min)
			}
			z.Draw(dst, bounds, image.NewUniform(withAlpha(b.ClassColor, 1)), image.Point{})
		}
		if opts.ShowIDs {
			c := b.Centroid().Pixel()
			drawLabel(dst, c.X, c.Y, fmt.Sprint(b.ID), color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
		}
	}

	encoded, err := encodePNG(dst)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		BlobCount:   drawn,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

// addPolygon appends a closed polygon in rasterizer space. Outer contours and
// holes wind in opposite directions, so holes cancel the fill.
func addPolygon(z *vector.Rasterizer, poly []geometry.Point, origin image.Point) {
	if len(poly) < 3 {
		return
	}
	ox, oy := float64(origin.X), float64(origin.Y)
	// Contour vertices sit on pixel centres; shift by half a pixel to pixel space.
	z.MoveTo(float32(poly[0].X-ox+0.5), float32(poly[0].Y-oy+0.5))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X-ox+0.5), float32(p.Y-oy+0.5))
	}
	z.ClosePath()
}

// addOutline appends one quad per contour edge, width wide.
func addOutline(z *vector.Rasterizer, poly []geometry.Point, width float64, origin image.Point) {
	n := len(poly)
	if n < 2 {
		return
	}
	half := width / 2
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		addPolygon(z, []geometry.Point{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		}, origin)
	}
}

// drawLabel draws text in a 3x5 pixel font with a background box. Only digits
// and commas have glyphs.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	bounds := img.Bounds()
	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth
	x -= labelWidth / 2
	y -= labelHeight / 2

	for dy := -1; dy < labelHeight-1; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := (image.Point{X: x + dx, Y: y + dy}); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if p := (image.Point{X: cx + col, Y: y + row}); pixel == '1' && p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
