package controller

import (
	"sync"

	"github.com/henrytill/notes-go/internal/note"
)

// guard admits one operation per note id at a time.
type guard struct {
	mu  sync.Mutex
	ids map[note.ID]struct{}
}

func newGuard() *guard {
	return &guard{ids: make(map[note.ID]struct{})}
}

func (g *guard) acquire(id note.ID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ids[id]; busy {
		return false
	}
	g.ids[id] = struct{}{}
	return true
}

func (g *guard) release(id note.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ids, id)
}
