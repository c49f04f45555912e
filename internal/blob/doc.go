// Package blob defines Blob, one annotated region of an orthomosaic.
//
// A Blob keeps its geometry in vector form (an outer contour plus holes) and
// derives every other geometric attribute from the mask those contours describe:
// bounding box, pixel area, outer perimeter and centroid. All geometric edits go
// through UpdateUsingMask, which recomputes the attributes together, so a Blob
// never holds a contour that disagrees with its box, area or centroid.
//
// Semantic metadata (class name, class colour, note) is independent of geometry
// and may be changed freely.
//
// # Failure Semantics
//
// Degenerate edits (a closed curve that encloses nothing, a curve that never
// enters the blob, a hole that would erase the whole blob) return false or nil
// and leave the Blob untouched. Building or updating a Blob from an empty mask
// is a programming error and panics.
package blob
