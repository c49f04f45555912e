package blob

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// ErrInvalidRecord is returned when a record cannot describe a valid blob.
var ErrInvalidRecord = errors.New("invalid blob record")

// Record is the persistent form of a Blob: plain numbers, strings and nested
// lists only. BBox is [top, left, width, height], Centroid is [x, y], contours
// are lists of [x, y] pairs and ClassColor is [r, g, b] in 0-255.
type Record struct {
	ID            int            `json:"id"`
	Name          string         `json:"blob_name"`
	ClassName     string         `json:"class_name"`
	ClassColor    [3]int         `json:"class_color"`
	Note          string         `json:"note"`
	BBox          [4]int         `json:"bbox"`
	Centroid      [2]float64     `json:"centroid"`
	Area          int            `json:"area"`
	Perimeter     float64        `json:"perimeter"`
	Contour       [][2]float64   `json:"contour"`
	InnerContours [][][2]float64 `json:"inner_contours"`
}

// ToRecord captures the blob's persistent state.
func (b *Blob) ToRecord() Record {
	r, g, bl := b.ClassColor.Clamped().RGB255()
	rec := Record{
		ID:         b.ID,
		Name:       b.Name,
		ClassName:  b.ClassName,
		ClassColor: [3]int{int(r), int(g), int(bl)},
		Note:       b.Note,
		BBox:       [4]int{b.bbox.Top, b.bbox.Left, b.bbox.Width, b.bbox.Height},
		Centroid:   [2]float64{b.centroid.X, b.centroid.Y},
		Area:       b.area,
		Perimeter:  b.perimeter,
		Contour:    pointsToPairs(b.contour),
	}
	rec.InnerContours = make([][][2]float64, len(b.innerContours))
	for i, c := range b.innerContours {
		rec.InnerContours[i] = pointsToPairs(c)
	}
	return rec
}

// FromRecord restores a blob from its persistent state. Derived attributes are
// taken as stored so a round trip reproduces the original exactly.
func FromRecord(rec Record) (*Blob, error) {
	if len(rec.Contour) < 3 {
		return nil, errors.Wrapf(ErrInvalidRecord, "blob %d: contour has %d points", rec.ID, len(rec.Contour))
	}
	if rec.BBox[2] < 0 || rec.BBox[3] < 0 {
		return nil, errors.Wrapf(ErrInvalidRecord, "blob %d: negative bbox size", rec.ID)
	}
	for i, c := range rec.InnerContours {
		if len(c) < 3 {
			return nil, errors.Wrapf(ErrInvalidRecord, "blob %d: inner contour %d has %d points", rec.ID, i, len(c))
		}
	}
	for _, v := range rec.ClassColor {
		if v < 0 || v > 255 {
			return nil, errors.Wrapf(ErrInvalidRecord, "blob %d: class colour %v out of range", rec.ID, rec.ClassColor)
		}
	}

	b := &Blob{
		ID:        rec.ID,
		Name:      rec.Name,
		ClassName: rec.ClassName,
		ClassColor: colorful.Color{
			R: float64(rec.ClassColor[0]) / 255,
			G: float64(rec.ClassColor[1]) / 255,
			B: float64(rec.ClassColor[2]) / 255,
		},
		Note:      rec.Note,
		bbox:      geometry.NewBoundingBox(rec.BBox[0], rec.BBox[1], rec.BBox[2], rec.BBox[3]),
		centroid:  geometry.Point{X: rec.Centroid[0], Y: rec.Centroid[1]},
		area:      rec.Area,
		perimeter: rec.Perimeter,
		contour:   pairsToPoints(rec.Contour),
	}
	if b.Name == "" {
		b.Name = instanceName(b.ID)
	}
	for _, c := range rec.InnerContours {
		b.innerContours = append(b.innerContours, pairsToPoints(c))
	}
	return b, nil
}

// MarshalJSON encodes the blob as its Record.
func (b *Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToRecord())
}

// UnmarshalJSON decodes a Record into the blob.
func (b *Blob) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return errors.Wrap(err, "decode blob record")
	}
	restored, err := FromRecord(rec)
	if err != nil {
		return err
	}
	*b = *restored
	return nil
}

func pointsToPairs(points []geometry.Point) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func pairsToPoints(pairs [][2]float64) []geometry.Point {
	out := make([]geometry.Point, len(pairs))
	for i, p := range pairs {
		out[i] = geometry.Point{X: p[0], Y: p[1]}
	}
	return out
}
