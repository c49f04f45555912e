// Package annotation owns the blobs annotated on one image.
//
// A Collection hands out monotonically increasing blob ids, turns raw masks
// from external segmentation tools into blobs, resolves clicks to the smallest
// enclosing blob and reports per-class statistics. It also groups blobs, imports
// colour label maps and persists its blobs as records.
//
// A Collection is not safe for concurrent use. Batch geometry work fans out over
// a worker pool internally, but the blob list is only mutated by the caller's
// goroutine.
package annotation
