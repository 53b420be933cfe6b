package note

// Collection is the client-side, ordered view of the remote notes. Ids are
// unique: inserting a note whose id is already present replaces that entry in
// place instead of appending a duplicate.
type Collection struct {
	notes []Note
	ids   map[ID]int
}

func NewCollection() *Collection {
	return &Collection{
		notes: []Note{},
		ids:   make(map[ID]int),
	}
}

// Reset replaces the whole collection. When notes contains duplicate ids the
// first occurrence wins.
func (c *Collection) Reset(notes []Note) {
	c.notes = make([]Note, 0, len(notes))
	c.ids = make(map[ID]int, len(notes))
	for _, n := range notes {
		if _, exists := c.ids[n.ID]; exists {
			continue
		}
		c.ids[n.ID] = len(c.notes)
		c.notes = append(c.notes, n)
	}
}

func (c *Collection) Get(id ID) (Note, bool) {
	idx, exists := c.ids[id]
	if !exists {
		return Note{}, false
	}
	return c.notes[idx], true
}

// Upsert appends n, or replaces the entry with the same id.
func (c *Collection) Upsert(n Note) {
	if idx, exists := c.ids[n.ID]; exists {
		c.notes[idx] = n
		return
	}
	c.ids[n.ID] = len(c.notes)
	c.notes = append(c.notes, n)
}

// Replace swaps the entry for id with n. The replacement may carry a
// different id (the server is authoritative); it reports false when id is
// not present.
func (c *Collection) Replace(id ID, n Note) bool {
	idx, exists := c.ids[id]
	if !exists {
		return false
	}
	if n.ID != id {
		if _, taken := c.ids[n.ID]; taken {
			c.Remove(id)
			c.Upsert(n)
			return true
		}
		delete(c.ids, id)
		c.ids[n.ID] = idx
	}
	c.notes[idx] = n
	return true
}

func (c *Collection) Remove(id ID) bool {
	idx, exists := c.ids[id]
	if !exists {
		return false
	}
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	delete(c.ids, id)
	for i := idx; i < len(c.notes); i++ {
		c.ids[c.notes[i].ID] = i
	}
	return true
}

// Filter returns the notes matching pred in collection order. The collection
// itself is never modified.
func (c *Collection) Filter(pred Predicate) []Note {
	out := make([]Note, 0, len(c.notes))
	for _, n := range c.notes {
		if pred == nil || pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// Notes returns a copy of the full sequence.
func (c *Collection) Notes() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

func (c *Collection) Len() int {
	return len(c.notes)
}
