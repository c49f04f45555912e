// Package mask implements binary raster masks paired with the bounding box that
// places them in global image coordinates, and the algebra used to combine them.
//
// A Mask is never interpreted without its box: every operation reads Mask.Box to
// find where the pixels sit, so two masks with different boxes can be combined
// without the caller pre-aligning them.
//
// # Operations
//
//   - Algebra: JointCanvas, Paint, Replace, Intersect, Union, Subtract
//   - Rasterization: RasterizePoints, RasterizePolyline, PointsToBoundingBox
//   - Regions: Label (4- or 8-connected components), Components, FillHoles, Flood
//   - Morphology: DistanceTransform, Watershed, Disk markers
//   - Interop: FromImage (0/255 or 0/1 rasters)
//
// # Numeric Semantics
//
// Pixel coordinates are integers. Floating-point points are converted to mask
// indices by subtracting the box origin and flooring.
//
// # Thread Safety
//
// Masks are plain values with no internal locking. Distinct masks may be processed
// concurrently; a single mask must not be mutated from more than one goroutine.
package mask
