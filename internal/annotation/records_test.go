package annotation

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
	"github.com/ironsheep/reef-annotator-mcp/internal/mask"
)

func TestRecordsRoundTrip(t *testing.T) {
	src := newCollection()
	a := addRect(src, box(0, 0, 20, 20))
	b := addRect(src, box(5, 5, 10, 10))
	_, err := src.Subtract(a.ID, b.ID)
	require.NoError(t, err)
	a.SetClass("Porites", colorful.Color{R: 1})
	b.Note = "core"

	recs := src.Records()
	require.Len(t, recs, 2)

	dst := newCollection()
	require.NoError(t, dst.LoadRecords(recs))
	assert.Equal(t, recs, dst.Records())
	assert.Equal(t, 3, dst.NextID(), "ids continue after the loaded ones")

	restored, err := dst.Blob(a.ID)
	require.NoError(t, err)
	assert.True(t, restored.Mask().Equal(a.Mask()))
}

func TestLoadRecordsIsAtomic(t *testing.T) {
	c := newCollection()
	keep := addRect(c, box(0, 0, 5, 5))

	rec := blob.FromRegion(mask.Filled(box(0, 0, 4, 4)), 7).ToRecord()
	bad := rec
	bad.Contour = nil

	err := c.LoadRecords([]blob.Record{rec, bad})
	assert.ErrorIs(t, err, blob.ErrInvalidRecord)
	assert.Equal(t, []*blob.Blob{keep}, c.Blobs())

	err = c.LoadRecords([]blob.Record{rec, rec})
	assert.ErrorIs(t, err, blob.ErrInvalidRecord)
	assert.Equal(t, 1, c.Len())
}

func TestLoadRecordsClearsGroups(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	_, err := c.CreateGroup("colony", a.ID)
	require.NoError(t, err)

	require.NoError(t, c.LoadRecords(c.Records()))
	assert.Empty(t, c.Groups())
	assert.Equal(t, 1, c.Len())
}
