package annotation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/reef-annotator-mcp/internal/blob"
)

// Group is a named cluster of blobs, for example the fragments of one colony.
// Members refer back to it through Blob.GroupID; the group does not own them.
type Group struct {
	ID   uuid.UUID
	Name string

	members []*blob.Blob
}

// Members returns the blobs in the group.
func (g *Group) Members() []*blob.Blob {
	return append([]*blob.Blob(nil), g.members...)
}

// CreateGroup groups the blobs with the given ids. A blob already in another
// group is moved.
func (c *Collection) CreateGroup(name string, ids ...int) (*Group, error) {
	members, err := c.lookup(ids)
	if err != nil {
		return nil, errors.Wrap(err, "create group")
	}
	g := &Group{ID: uuid.New(), Name: name}
	for _, b := range members {
		c.leaveGroup(b)
		b.GroupID = g.ID
		g.members = append(g.members, b)
	}
	c.groups[g.ID] = g
	return g, nil
}

// Group returns the group with the given id, or nil.
func (c *Collection) Group(id uuid.UUID) *Group {
	return c.groups[id]
}

// Groups returns all groups ordered by name.
func (c *Collection) Groups() []*Group {
	out := make([]*Group, 0, len(c.groups))
	for _, g := range c.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// RemoveGroup dissolves the group; its blobs stay in the collection.
func (c *Collection) RemoveGroup(id uuid.UUID) bool {
	g, ok := c.groups[id]
	if !ok {
		return false
	}
	for _, b := range g.members {
		b.GroupID = uuid.Nil
	}
	delete(c.groups, id)
	return true
}

// leaveGroup clears the back-reference of b and drops it from its group.
// Groups left empty are removed.
func (c *Collection) leaveGroup(b *blob.Blob) {
	if b.GroupID == uuid.Nil {
		return
	}
	g, ok := c.groups[b.GroupID]
	b.GroupID = uuid.Nil
	if !ok {
		return
	}
	for i, m := range g.members {
		if m == b {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	if len(g.members) == 0 {
		delete(c.groups, g.ID)
	}
}
