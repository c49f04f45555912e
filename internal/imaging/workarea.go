package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// CropResult contains a PNG-encoded image region.
type CropResult struct {
	Box         geometry.BoundingBox `json:"box"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	ImageBase64 string               `json:"image_base64"`
	MimeType    string               `json:"mime_type"`
}

// ClampWorkArea restricts box to the image bounds. It fails when nothing is left.
func ClampWorkArea(img image.Image, box geometry.BoundingBox) (geometry.BoundingBox, error) {
	clamped, ok := geometry.Intersection(box, geometry.FromRect(img.Bounds()))
	if !ok {
		return geometry.BoundingBox{}, fmt.Errorf("work area %s outside image bounds %v", box, img.Bounds())
	}
	return clamped, nil
}

// CropWorkArea extracts the work area, clamped to the image, and optionally
// rescales it. A scale of 1 or less than or equal to 0 keeps the native size.
func CropWorkArea(img image.Image, box geometry.BoundingBox, scale float64) (*CropResult, error) {
	clamped, err := ClampWorkArea(img, box)
	if err != nil {
		return nil, err
	}

	cropped := imaging.Crop(img, clamped.Rect())
	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	encoded, err := encodePNG(cropped)
	if err != nil {
		return nil, err
	}
	return &CropResult{
		Box:         clamped,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
