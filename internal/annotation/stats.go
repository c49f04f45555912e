package annotation

import (
	"sort"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

// ClassStats aggregates the blobs of one class.
type ClassStats struct {
	ClassName      string  `json:"class_name"`
	Count          int     `json:"count"`
	TotalArea      int     `json:"total_area"`
	MeanArea       float64 `json:"mean_area"`
	TotalPerimeter float64 `json:"total_perimeter"`
}

// Stats summarises a collection.
type Stats struct {
	Count          int     `json:"count"`
	TotalArea      int     `json:"total_area"`
	MeanArea       float64 `json:"mean_area"`
	TotalPerimeter float64 `json:"total_perimeter"`
	// CoveredPixels counts pixels under at least one blob; overlaps count once.
	CoveredPixels int                  `json:"covered_pixels"`
	Extent        geometry.BoundingBox `json:"extent"`
	Classes       []ClassStats         `json:"classes"`
}

// Statistics computes per-class and overall totals. Classes are sorted by name.
func (c *Collection) Statistics() Stats {
	var s Stats
	if len(c.blobs) == 0 {
		return s
	}
	byClass := make(map[string]*ClassStats)
	boxes := make([]geometry.BoundingBox, 0, len(c.blobs))
	for _, b := range c.blobs {
		cs, ok := byClass[b.ClassName]
		if !ok {
			cs = &ClassStats{ClassName: b.ClassName}
			byClass[b.ClassName] = cs
		}
		cs.Count++
		cs.TotalArea += b.Area()
		cs.TotalPerimeter += b.Perimeter()

		s.Count++
		s.TotalArea += b.Area()
		s.TotalPerimeter += b.Perimeter()
		boxes = append(boxes, b.BBox())
	}
	s.MeanArea = float64(s.TotalArea) / float64(s.Count)
	s.Extent = geometry.Union(boxes...)

	covered := mask.New(s.Extent)
	for _, b := range c.blobs {
		mask.Paint(covered, b.Mask(), true)
	}
	s.CoveredPixels = covered.Count()

	for _, cs := range byClass {
		cs.MeanArea = float64(cs.TotalArea) / float64(cs.Count)
		s.Classes = append(s.Classes, *cs)
	}
	sort.Slice(s.Classes, func(i, j int) bool { return s.Classes[i].ClassName < s.Classes[j].ClassName })
	return s
}
