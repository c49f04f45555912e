package annotation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	b := addRect(c, box(0, 10, 5, 5))

	g, err := c.CreateGroup("colony", a.ID, b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, g.ID, a.GroupID)
	assert.Equal(t, g.ID, b.GroupID)
	assert.Len(t, g.Members(), 2)
	assert.Same(t, g, c.Group(g.ID))

	_, err = c.CreateGroup("broken", 99)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestRemovingMemberClearsReference(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	b := addRect(c, box(0, 10, 5, 5))
	g, err := c.CreateGroup("colony", a.ID, b.ID)
	require.NoError(t, err)

	c.RemoveBlob(a)
	assert.Equal(t, uuid.Nil, a.GroupID)
	assert.Len(t, g.Members(), 1)

	c.RemoveBlob(b)
	assert.Nil(t, c.Group(g.ID), "empty groups are dropped")
}

func TestRegroupingMovesBlob(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	b := addRect(c, box(0, 10, 5, 5))
	first, err := c.CreateGroup("first", a.ID, b.ID)
	require.NoError(t, err)

	second, err := c.CreateGroup("second", b.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, b.GroupID)
	assert.Len(t, first.Members(), 1)

	groups := c.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "first", groups[0].Name)
	assert.Equal(t, "second", groups[1].Name)
}

func TestRemoveGroupKeepsBlobs(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	g, err := c.CreateGroup("colony", a.ID)
	require.NoError(t, err)

	assert.True(t, c.RemoveGroup(g.ID))
	assert.False(t, c.RemoveGroup(g.ID))
	assert.Equal(t, uuid.Nil, a.GroupID)
	assert.Equal(t, 1, c.Len())
}

func TestUnionLeavesGroup(t *testing.T) {
	c := newCollection()
	a := addRect(c, box(0, 0, 5, 5))
	b := addRect(c, box(0, 10, 5, 5))
	g, err := c.CreateGroup("colony", a.ID, b.ID)
	require.NoError(t, err)

	merged, err := c.Union(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, merged.GroupID)
	assert.Nil(t, c.Group(g.ID))
}
