package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/reef-annotator-mcp/internal/annotation"
	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
	"github.com/ironsheep/reef-annotator-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "annotation_cut").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", slog.String("tool", params.Name), slog.String("error", err.Error()))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop_work_area":
		return s.handleImageCropWorkArea(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Blob creation
	case "annotation_import_mask":
		return s.handleImportMask(args)
	case "annotation_closed_curve":
		return s.handleClosedCurve(args)
	case "annotation_import_label_map":
		return s.handleImportLabelMap(args)

	// Queries
	case "annotation_list_blobs":
		return s.handleListBlobs()
	case "annotation_get_blob":
		return s.handleGetBlob(args)
	case "annotation_clicked_blob":
		return s.handleClickedBlob(args)
	case "annotation_statistics":
		return s.collection.Statistics(), nil

	// Region-set operations
	case "annotation_union":
		return s.handleUnion(args)
	case "annotation_subtract":
		return s.handleSubtract(args)
	case "annotation_cut":
		return s.handleCut(args)
	case "annotation_split":
		return s.handleSplit(args)
	case "annotation_edit_border":
		return s.handleEditBorder(args)
	case "annotation_carve_hole":
		return s.handleCarveHole(args)

	// Metadata and lifecycle
	case "annotation_set_class":
		return s.handleSetClass(args)
	case "annotation_group":
		return s.handleGroup(args)
	case "annotation_remove":
		return s.handleRemove(args)
	case "annotation_export":
		return s.handleExport(args)
	case "annotation_load":
		return s.handleLoad(args)
	case "annotation_render_overlay":
		return s.handleRenderOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// BlobSummary is the compact description of a blob returned by most tools.
type BlobSummary struct {
	ID         int                  `json:"id"`
	Name       string               `json:"name"`
	ClassName  string               `json:"class_name"`
	ClassColor string               `json:"class_color"`
	Note       string               `json:"note,omitempty"`
	BBox       geometry.BoundingBox `json:"bbox"`
	Area       int                  `json:"area"`
	Perimeter  float64              `json:"perimeter"`
	Centroid   geometry.Point       `json:"centroid"`
	Holes      int                  `json:"holes"`
	GroupID    string               `json:"group_id,omitempty"`
}

func summarize(b *blob.Blob) BlobSummary {
	s := BlobSummary{
		ID:         b.ID,
		Name:       b.Name,
		ClassName:  b.ClassName,
		ClassColor: imaging.FormatClassColor(b.ClassColor),
		Note:       b.Note,
		BBox:       b.BBox(),
		Area:       b.Area(),
		Perimeter:  b.Perimeter(),
		Centroid:   b.Centroid(),
		Holes:      len(b.InnerContours()),
	}
	if b.GroupID != uuid.Nil {
		s.GroupID = b.GroupID.String()
	}
	return s
}

func summarizeAll(blobs []*blob.Blob) []BlobSummary {
	out := make([]BlobSummary, len(blobs))
	for i, b := range blobs {
		out[i] = summarize(b)
	}
	return out
}

// pairs is a point list as sent by clients: [[x, y], ...].
type pairs [][2]float64

func (p pairs) points() []geometry.Point {
	out := make([]geometry.Point, len(p))
	for i, v := range p {
		out[i] = geometry.Pt(v[0], v[1])
	}
	return out
}

// resolveClass picks the colour for a class: the explicit hex when given, the
// colour already used for that class, or the next palette colour.
func (s *Server) resolveClass(name, hex string) (string, colorful.Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = blob.DefaultClassName
	}
	if hex != "" {
		c, err := imaging.ParseClassColor(hex)
		if err != nil {
			return "", colorful.Color{}, err
		}
		s.classColors[name] = c
		return name, c, nil
	}
	if c, ok := s.classColors[name]; ok {
		return name, c, nil
	}
	if name == blob.DefaultClassName {
		return name, blob.DefaultClassColor, nil
	}
	palette := imaging.ClassPalette(len(s.classColors) + 1)
	c := palette[len(palette)-1]
	s.classColors[name] = c
	return name, c, nil
}

// === Image Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

type imageLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type workAreaArgs struct {
	Path   string  `json:"path"`
	Top    int     `json:"top"`
	Left   int     `json:"left"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropWorkArea(args json.RawMessage) (interface{}, error) {
	var a workAreaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropWorkArea(img, geometry.NewBoundingBox(a.Top, a.Left, a.Width, a.Height), a.Scale)
}

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Blob Creation Handlers ===

type importMaskArgs struct {
	Path          string `json:"path"`
	OffsetX       int    `json:"offset_x"`
	OffsetY       int    `json:"offset_y"`
	ReferenceArea int    `json:"reference_area"`
	ClassName     string `json:"class_name"`
	ClassColor    string `json:"class_color"`
}

func (s *Server) handleImportMask(args json.RawMessage) (interface{}, error) {
	var a importMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	name, c, err := s.resolveClass(a.ClassName, a.ClassColor)
	if err != nil {
		return nil, err
	}
	m, err := imaging.LoadMask(a.Path, a.OffsetX, a.OffsetY)
	if err != nil {
		return nil, err
	}
	blobs := s.collection.CreateBlobsFromMask(m, a.ReferenceArea)
	for _, b := range blobs {
		b.SetClass(name, c)
		s.collection.AddBlob(b)
	}
	return map[string]interface{}{"created": summarizeAll(blobs)}, nil
}

type closedCurveArgs struct {
	Points     pairs  `json:"points"`
	ClassName  string `json:"class_name"`
	ClassColor string `json:"class_color"`
}

func (s *Server) handleClosedCurve(args json.RawMessage) (interface{}, error) {
	var a closedCurveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	name, c, err := s.resolveClass(a.ClassName, a.ClassColor)
	if err != nil {
		return nil, err
	}
	b := s.collection.CreateBlobFromClosedCurve(a.Points.points())
	if b == nil {
		return nil, fmt.Errorf("curve does not enclose a region")
	}
	b.SetClass(name, c)
	s.collection.AddBlob(b)
	return summarize(b), nil
}

type labelMapArgs struct {
	Path    string `json:"path"`
	Classes []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"classes"`
}

func (s *Server) handleImportLabelMap(args json.RawMessage) (interface{}, error) {
	var a labelMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	classes := make([]annotation.Class, 0, len(a.Classes))
	for _, cl := range a.Classes {
		name, c, err := s.resolveClass(cl.Name, cl.Color)
		if err != nil {
			return nil, err
		}
		classes = append(classes, annotation.Class{Name: name, Color: c})
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	blobs, err := s.collection.ImportLabelMap(img, classes)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"created": summarizeAll(blobs)}, nil
}

// === Query Handlers ===

func (s *Server) handleListBlobs() (interface{}, error) {
	return map[string]interface{}{"blobs": summarizeAll(s.collection.Blobs())}, nil
}

type blobIDArgs struct {
	ID int `json:"id"`
}

func (s *Server) handleGetBlob(args json.RawMessage) (interface{}, error) {
	var a blobIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.collection.Blob(a.ID)
	if err != nil {
		return nil, err
	}
	return b.ToRecord(), nil
}

type pointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleClickedBlob(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b := s.collection.ClickedBlob(a.X, a.Y)
	if b == nil {
		return map[string]interface{}{"found": false}, nil
	}
	return map[string]interface{}{"found": true, "blob": summarize(b)}, nil
}

// === Region-Set Operation Handlers ===

type blobIDsArgs struct {
	IDs []int `json:"ids"`
}

func (s *Server) handleUnion(args json.RawMessage) (interface{}, error) {
	var a blobIDsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	merged, err := s.collection.Union(a.IDs...)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		return nil, fmt.Errorf("union is empty")
	}
	return summarize(merged), nil
}

type subtractArgs struct {
	ID         int `json:"id"`
	SubtractID int `json:"subtract_id"`
}

func (s *Server) handleSubtract(args json.RawMessage) (interface{}, error) {
	var a subtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ok, err := s.collection.Subtract(a.ID, a.SubtractID)
	if err != nil {
		return nil, err
	}
	b, _ := s.collection.Blob(a.ID)
	return map[string]interface{}{"applied": ok, "blob": summarize(b)}, nil
}

type curveArgs struct {
	ID     int   `json:"id"`
	Curve  pairs `json:"curve"`
	Seeds  pairs `json:"seeds"`
	Stroke pairs `json:"stroke"`
}

func (s *Server) handleCut(args json.RawMessage) (interface{}, error) {
	var a curveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pieces, err := s.collection.Cut(a.ID, a.Curve.points())
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": len(pieces) > 0, "created": summarizeAll(pieces)}, nil
}

func (s *Server) handleSplit(args json.RawMessage) (interface{}, error) {
	var a curveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	parts, err := s.collection.Split(a.ID, a.Seeds.points())
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": len(parts) > 0, "created": summarizeAll(parts)}, nil
}

func (s *Server) handleEditBorder(args json.RawMessage) (interface{}, error) {
	var a curveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	changed, err := s.collection.EditBorder(a.ID, a.Stroke.points())
	if err != nil {
		return nil, err
	}
	b, _ := s.collection.Blob(a.ID)
	return map[string]interface{}{"applied": changed, "blob": summarize(b)}, nil
}

type carveHoleArgs struct {
	ID        int     `json:"id"`
	Path      string  `json:"path"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Tolerance *int    `json:"tolerance"`
	Commit    bool    `json:"commit"`
}

func (s *Server) handleCarveHole(args json.RawMessage) (interface{}, error) {
	var a carveHoleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := 20
	if a.Tolerance != nil {
		tolerance = min(max(*a.Tolerance, 0), 255)
	}
	b, err := s.collection.Blob(a.ID)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	hole, applied := b.CarveHole(geometry.Pt(a.X, a.Y), img, uint8(tolerance), a.Commit)
	result := map[string]interface{}{
		"applied":   applied,
		"hole_area": 0,
		"blob":      summarize(b),
	}
	if hole != nil {
		result["hole_area"] = hole.Count()
		if box, ok := hole.Extent(); ok {
			result["hole_bbox"] = box
		}
	}
	return result, nil
}

// === Metadata and Lifecycle Handlers ===

type setClassArgs struct {
	IDs        []int   `json:"ids"`
	ClassName  string  `json:"class_name"`
	ClassColor string  `json:"class_color"`
	Note       *string `json:"note"`
}

func (s *Server) handleSetClass(args json.RawMessage) (interface{}, error) {
	var a setClassArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	name, c, err := s.resolveClass(a.ClassName, a.ClassColor)
	if err != nil {
		return nil, err
	}
	updated := make([]*blob.Blob, 0, len(a.IDs))
	for _, id := range a.IDs {
		b, err := s.collection.Blob(id)
		if err != nil {
			return nil, err
		}
		updated = append(updated, b)
	}
	for _, b := range updated {
		b.SetClass(name, c)
		if a.Note != nil {
			b.Note = *a.Note
		}
	}
	return map[string]interface{}{"updated": summarizeAll(updated)}, nil
}

type groupArgs struct {
	Name string `json:"name"`
	IDs  []int  `json:"ids"`
}

func (s *Server) handleGroup(args json.RawMessage) (interface{}, error) {
	var a groupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.collection.CreateGroup(a.Name, a.IDs...)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"group_id": g.ID.String(),
		"name":     g.Name,
		"members":  summarizeAll(g.Members()),
	}, nil
}

func (s *Server) handleRemove(args json.RawMessage) (interface{}, error) {
	var a blobIDsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	removed := []int{}
	missing := []int{}
	for _, id := range a.IDs {
		b, err := s.collection.Blob(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		s.collection.RemoveBlob(b)
		removed = append(removed, id)
	}
	return map[string]interface{}{"removed": removed, "missing": missing}, nil
}

type exportArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	records := s.collection.Records()
	if a.Path != "" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode records: %w", err)
		}
		if err := os.WriteFile(a.Path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write records: %w", err)
		}
	}
	return map[string]interface{}{"count": len(records), "path": a.Path, "blobs": records}, nil
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	var records []blob.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if err := s.collection.LoadRecords(records); err != nil {
		return nil, err
	}
	return map[string]interface{}{"count": s.collection.Len()}, nil
}

type overlayArgs struct {
	Path      string   `json:"path"`
	Top       int      `json:"top"`
	Left      int      `json:"left"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	FillAlpha *float64 `json:"fill_alpha"`
	LineWidth *float64 `json:"line_width"`
	ShowIDs   *bool    `json:"show_ids"`
}

func (s *Server) handleRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := imaging.DefaultOverlayOptions()
	opts.Box = geometry.NewBoundingBox(a.Top, a.Left, a.Width, a.Height)
	if a.FillAlpha != nil {
		opts.FillAlpha = min(max(*a.FillAlpha, 0), 1)
	}
	if a.LineWidth != nil {
		opts.LineWidth = max(*a.LineWidth, 0)
	}
	if a.ShowIDs != nil {
		opts.ShowIDs = *a.ShowIDs
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.RenderOverlay(img, s.collection.Blobs(), opts)
}
