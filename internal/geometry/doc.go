// Package geometry provides the integer bounding-box algebra and the small set of
// polygon and polyline helpers shared by the mask, contour and blob packages.
//
// # Coordinate System
//
// All coordinates are global image coordinates with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Integer pixel (x, y) has its
// center at the floating-point point (x, y).
//
// # Bounding Boxes
//
// A BoundingBox is always expressed as (Top, Left, Width, Height). Right() and
// Bottom() are exclusive edges derived from it; no other box convention is used
// anywhere in this module. Conversions to and from image.Rectangle happen only
// through Rect() and FromRect().
//
// # Thread Safety
//
// Every function in this package is pure and safe for concurrent use.
package geometry
