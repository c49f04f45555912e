// Package regionops implements the geometric edits that consume one or more
// blobs and produce new or modified blobs: union, subtraction, cutting along a
// curve, seed-based splitting and border editing.
//
// Every operation works on the blobs' rebuilt masks and ends in
// Blob.UpdateUsingMask, so a blob is either fully updated or left untouched.
// Degenerate results are reported through nil, false or empty slices.
package regionops
