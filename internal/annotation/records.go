package annotation

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
)

// Records returns the persistent form of every blob, in collection order.
func (c *Collection) Records() []blob.Record {
	out := make([]blob.Record, len(c.blobs))
	for i, b := range c.blobs {
		out[i] = b.ToRecord()
	}
	return out
}

// LoadRecords replaces the collection content with blobs restored from recs.
// Groups are cleared. Nothing changes when any record is invalid or two records
// share an id.
func (c *Collection) LoadRecords(recs []blob.Record) error {
	blobs := make([]*blob.Blob, 0, len(recs))
	seen := make(map[int]bool, len(recs))
	for i, r := range recs {
		b, err := blob.FromRecord(r)
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		if seen[b.ID] {
			return errors.Wrapf(blob.ErrInvalidRecord, "record %d: duplicate id %d", i, b.ID)
		}
		seen[b.ID] = true
		blobs = append(blobs, b)
	}

	c.blobs = nil
	c.groups = make(map[uuid.UUID]*Group)
	for _, b := range blobs {
		c.AddBlob(b)
	}
	return nil
}
