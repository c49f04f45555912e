package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type props = map[string]interface{}

func schema(properties props, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func propDefault(typ, description string, def interface{}) map[string]interface{} {
	p := prop(typ, description)
	p["default"] = def
	return p
}

// pointList describes an array of [x, y] pairs in global image coordinates.
func pointList(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": "number"},
			"minItems": 2,
			"maxItems": 2,
		},
		"description": description,
	}
}

func idList(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer"},
		"description": description,
	}
}

var (
	pathProp       = prop("string", "Absolute path to the image file")
	blobIDProp     = prop("integer", "Blob id")
	classNameProp  = prop("string", "Semantic class name (default \"Empty\")")
	classColorProp = prop("string", "Class colour as #RRGGBB; a palette colour is chosen when omitted")
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Images
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Set reload after the file changed on disk.",
			InputSchema: schema(props{
				"path":   pathProp,
				"reload": propDefault("boolean", "Drop the cached copy and read the file again", false),
			}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: schema(props{"path": pathProp}, "path"),
		},
		{
			Name:        "image_crop_work_area",
			Description: "Crop a work area (top, left, width, height) from an image, clamped to its bounds, as base64 PNG.",
			InputSchema: schema(props{
				"path":   pathProp,
				"top":    prop("integer", "Top edge Y coordinate"),
				"left":   prop("integer", "Left edge X coordinate"),
				"width":  prop("integer", "Width in pixels"),
				"height": prop("integer", "Height in pixels"),
				"scale":  propDefault("number", "Optional scale factor", 1.0),
			}, "path", "top", "left", "width", "height"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the colour at a pixel as hex, RGB and CIE Lab. Useful to choose class colours or a carve tolerance.",
			InputSchema: schema(props{
				"path": pathProp,
				"x":    prop("integer", "X coordinate"),
				"y":    prop("integer", "Y coordinate"),
			}, "path", "x", "y"),
		},

		// Blob creation
		{
			Name:        "annotation_import_mask",
			Description: "Create blobs from a binary segmentation mask image (0/1 or 0/255) placed at an offset. Holes are filled and components smaller than a fraction of reference_area are dropped.",
			InputSchema: schema(props{
				"path":           prop("string", "Absolute path to the mask image"),
				"offset_x":       propDefault("integer", "X of the mask's top-left pixel in the image", 0),
				"offset_y":       propDefault("integer", "Y of the mask's top-left pixel in the image", 0),
				"reference_area": propDefault("integer", "Area the threshold fraction applies to, e.g. the area spanned by the prompt points", 0),
				"class_name":     classNameProp,
				"class_color":    classColorProp,
			}, "path"),
		},
		{
			Name:        "annotation_closed_curve",
			Description: "Create a blob from a freehand closed curve. Fails when the curve encloses nothing or is not closed.",
			InputSchema: schema(props{
				"points":      pointList("Curve vertices"),
				"class_name":  classNameProp,
				"class_color": classColorProp,
			}, "points"),
		},
		{
			Name:        "annotation_import_label_map",
			Description: "Create blobs from a colour label map: each pixel is assigned to the nearest class colour in Lab space.",
			InputSchema: schema(props{
				"path": prop("string", "Absolute path to the label map image"),
				"classes": map[string]interface{}{
					"type": "array",
					"items": schema(props{
						"name":  prop("string", "Class name"),
						"color": prop("string", "Class colour as #RRGGBB"),
					}, "name", "color"),
					"description": "Classes and their label colours",
				},
			}, "path", "classes"),
		},

		// Queries
		{
			Name:        "annotation_list_blobs",
			Description: "List all blobs with their class, bounding box, area, perimeter and centroid.",
			InputSchema: schema(props{}),
		},
		{
			Name:        "annotation_get_blob",
			Description: "Get one blob including its outer and inner contours.",
			InputSchema: schema(props{"id": blobIDProp}, "id"),
		},
		{
			Name:        "annotation_clicked_blob",
			Description: "Return the smallest blob whose outer contour contains the point.",
			InputSchema: schema(props{
				"x": prop("number", "X coordinate"),
				"y": prop("number", "Y coordinate"),
			}, "x", "y"),
		},
		{
			Name:        "annotation_statistics",
			Description: "Per-class counts, areas and perimeters, plus covered pixels.",
			InputSchema: schema(props{}),
		},

		// Region-set operations
		{
			Name:        "annotation_union",
			Description: "Merge blobs into the first one listed.",
			InputSchema: schema(props{"ids": idList("Blob ids; the first keeps its id and class")}, "ids"),
		},
		{
			Name:        "annotation_subtract",
			Description: "Erase the pixels of one blob from another.",
			InputSchema: schema(props{
				"id":          prop("integer", "Blob to subtract from"),
				"subtract_id": prop("integer", "Blob whose pixels are removed"),
			}, "id", "subtract_id"),
		},
		{
			Name:        "annotation_cut",
			Description: "Cut a blob along an open curve; it is replaced by the pieces above the minimum area.",
			InputSchema: schema(props{
				"id":    blobIDProp,
				"curve": pointList("Cut polyline"),
			}, "id", "curve"),
		},
		{
			Name:        "annotation_split",
			Description: "Split a blob by watershed, one part per seed point.",
			InputSchema: schema(props{
				"id":    blobIDProp,
				"seeds": pointList("Seed points inside the blob"),
			}, "id", "seeds"),
		},
		{
			Name:        "annotation_edit_border",
			Description: "Reshape a blob's border to follow a stroke that starts and ends inside it. The largest resulting piece is kept.",
			InputSchema: schema(props{
				"id":     blobIDProp,
				"stroke": pointList("Stroke polyline"),
			}, "id", "stroke"),
		},
		{
			Name:        "annotation_carve_hole",
			Description: "Flood fill from a seed over the smoothed image, within a grey-level tolerance, and optionally cut the region out of the blob.",
			InputSchema: schema(props{
				"id":        blobIDProp,
				"path":      pathProp,
				"x":         prop("number", "Seed X"),
				"y":         prop("number", "Seed Y"),
				"tolerance": propDefault("integer", "Grey-level tolerance (0-255)", 20),
				"commit":    propDefault("boolean", "Apply the hole instead of previewing it", false),
			}, "id", "path", "x", "y"),
		},

		// Metadata and lifecycle
		{
			Name:        "annotation_set_class",
			Description: "Assign a class, colour and note to blobs.",
			InputSchema: schema(props{
				"ids":         idList("Blob ids"),
				"class_name":  classNameProp,
				"class_color": classColorProp,
				"note":        prop("string", "Optional free-text note"),
			}, "ids", "class_name"),
		},
		{
			Name:        "annotation_group",
			Description: "Group blobs under a name, e.g. the fragments of one colony.",
			InputSchema: schema(props{
				"name": prop("string", "Group name"),
				"ids":  idList("Blob ids"),
			}, "name", "ids"),
		},
		{
			Name:        "annotation_remove",
			Description: "Remove blobs from the collection.",
			InputSchema: schema(props{"ids": idList("Blob ids")}, "ids"),
		},
		{
			Name:        "annotation_export",
			Description: "Return every blob as a record; optionally also write them as JSON to a file.",
			InputSchema: schema(props{"path": prop("string", "Optional output file")}),
		},
		{
			Name:        "annotation_load",
			Description: "Replace the collection with blob records read from a JSON file written by annotation_export.",
			InputSchema: schema(props{"path": prop("string", "JSON file path")}, "path"),
		},
		{
			Name:        "annotation_render_overlay",
			Description: "Render the blobs over an image as base64 PNG, optionally restricted to a work area.",
			InputSchema: schema(props{
				"path":       pathProp,
				"top":        prop("integer", "Work area top"),
				"left":       prop("integer", "Work area left"),
				"width":      prop("integer", "Work area width (0 renders the whole image)"),
				"height":     prop("integer", "Work area height"),
				"fill_alpha": propDefault("number", "Fill opacity 0-1", 0.4),
				"line_width": propDefault("number", "Outline width in pixels", 1.5),
				"show_ids":   propDefault("boolean", "Draw blob ids", true),
			}, "path"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
