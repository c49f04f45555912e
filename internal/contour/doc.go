// Package contour converts between the raster and vector forms of a region.
//
// MaskToContours traces the 0.5 iso-line of a binary mask with marching squares,
// after padding the mask so regions touching its edge still close. Vertices sit
// on pixel-edge midpoints, so every foreground pixel center lies strictly inside
// the traced outline and every background center strictly outside it.
// ContoursToMask inverts the trace by sampling pixel centers against the outer
// polygon and subtracting the holes, which makes the round trip exact for
// unsimplified outlines. Holes are toggled rather than cleared, so loops
// describing several disjoint parts reconstruct as well.
//
// The outer contour of a single-contour mask is simplified with Douglas-Peucker;
// the simplified outline is only kept when it rasterizes back to the same pixels.
package contour
