package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(notes []Note) []ID {
	out := make([]ID, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func assertUnique(t *testing.T, c *Collection) {
	t.Helper()
	seen := make(map[ID]bool)
	for _, n := range c.Notes() {
		require.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestResetKeepsFirstOccurrence(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{
		{ID: "1", Content: "A"},
		{ID: "2", Content: "B"},
		{ID: "1", Content: "A again"},
	})

	assert.Equal(t, []ID{"1", "2"}, ids(c.Notes()))
	n, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "A", n.Content)
}

func TestUpsertAppendsOrReplaces(t *testing.T) {
	c := NewCollection()
	c.Upsert(Note{ID: "1", Content: "A"})
	c.Upsert(Note{ID: "2", Content: "B"})
	c.Upsert(Note{ID: "1", Content: "A2"})

	assert.Equal(t, []ID{"1", "2"}, ids(c.Notes()))
	n, _ := c.Get("1")
	assert.Equal(t, "A2", n.Content)
}

func TestRemoveReindexes(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{{ID: "1"}, {ID: "2"}, {ID: "3"}})

	assert.True(t, c.Remove("1"))
	assert.False(t, c.Remove("1"))

	assert.Equal(t, []ID{"2", "3"}, ids(c.Notes()))
	assert.True(t, c.Replace("3", Note{ID: "3", Content: "C"}))
	n, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "C", n.Content)
}

func TestReplaceWithDifferentID(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{{ID: "1"}, {ID: "2"}})

	assert.True(t, c.Replace("1", Note{ID: "9"}))
	assert.Equal(t, []ID{"9", "2"}, ids(c.Notes()))
	_, ok := c.Get("1")
	assert.False(t, ok)

	// Replacing onto an id that is already present must not duplicate it.
	assert.True(t, c.Replace("9", Note{ID: "2", Content: "merged"}))
	assert.Equal(t, []ID{"2"}, ids(c.Notes()))
	assertUnique(t, c)
}

func TestReplaceUnknown(t *testing.T) {
	c := NewCollection()
	assert.False(t, c.Replace("1", Note{ID: "1"}))
	assert.Equal(t, 0, c.Len())
}

func TestIDsStayUniqueAcrossOperations(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{{ID: "1"}, {ID: "2"}, {ID: "2"}})
	c.Upsert(Note{ID: "3"})
	c.Upsert(Note{ID: "1"})
	c.Replace("3", Note{ID: "1"})
	c.Remove("2")
	c.Upsert(Note{ID: "2"})
	c.Replace("2", Note{ID: "4"})

	assertUnique(t, c)
	assert.Equal(t, []ID{"1", "4"}, ids(c.Notes()))
}

func TestFilterIsPureAndOrderPreserving(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{
		{ID: "1", Important: true},
		{ID: "2"},
		{ID: "3", Important: true},
		{ID: "4"},
	})
	before := c.Notes()

	important := c.Filter(ImportantOnly)
	assert.Equal(t, []ID{"1", "3"}, ids(important))

	important[0].Content = "mutated"
	assert.Equal(t, before, c.Notes())
	assert.Equal(t, before, c.Filter(All))
	assert.Equal(t, before, c.Filter(nil))
}

func TestNotesReturnsCopy(t *testing.T) {
	c := NewCollection()
	c.Reset([]Note{{ID: "1", Content: "A"}})

	snapshot := c.Notes()
	snapshot[0].Content = "changed"

	n, _ := c.Get("1")
	assert.Equal(t, "A", n.Content)
}
