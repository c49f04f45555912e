// Package imaging provides the raster I/O and rendering used around the
// annotation core.
//
// It loads and caches source images and segmentation masks, crops the work
// area handed to interactive edits, converts class colours between their text
// and colour-space forms, and renders blob overlays for review.
//
// # Coordinate System
//
// All pixel coordinates are global image coordinates with (0,0) at the top-left
// corner, X increasing rightward and Y increasing downward. Regions use the
// BoundingBox convention of the geometry package: (top, left, width, height)
// with exclusive right and bottom edges.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Rendering and cropping are
// stateless and return new images; inputs are never modified.
//
// # Output
//
// Rendered and cropped images are returned PNG-encoded as base64 strings,
// ready to be embedded in a tool result.
package imaging
