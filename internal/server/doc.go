// Package server implements the MCP (Model Context Protocol) server exposing a
// coral reef annotation session as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Images:
//   - image_load, image_dimensions: Image metadata
//   - image_crop_work_area: Extract the area an edit is confined to
//   - image_sample_color: Colour at a pixel
//
// Blob creation:
//   - annotation_import_mask: Blobs from an external segmentation mask
//   - annotation_closed_curve: Blob from a freehand closed curve
//   - annotation_import_label_map: Blobs from a colour label map
//
// Queries:
//   - annotation_list_blobs, annotation_get_blob
//   - annotation_clicked_blob: Smallest blob under a point
//   - annotation_statistics: Per-class totals
//
// Region-set operations:
//   - annotation_union, annotation_subtract
//   - annotation_cut, annotation_split
//   - annotation_edit_border, annotation_carve_hole
//
// Metadata and lifecycle:
//   - annotation_set_class, annotation_group, annotation_remove
//   - annotation_export, annotation_load: Blob records as JSON
//   - annotation_render_overlay: Blobs drawn over the image
//
// Degenerate edits (a curve that encloses nothing, a subtraction that would
// erase a blob) are not errors: the tool reports "applied": false and the
// collection is unchanged.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, _ := config.Load()
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Error("server error", "error", err)
//	}
package server
