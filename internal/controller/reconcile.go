package controller

import (
	"fmt"

	"github.com/henrytill/notes-go/internal/note"
)

type Outcome int

const (
	// Replaced: the server accepted the update and its copy is now local.
	Replaced Outcome = iota + 1
	// Removed: the server rejected the update; the note is presumed gone.
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type Result struct {
	Outcome Outcome
	// Note is the server's copy for Replaced and the dropped local copy for
	// Removed.
	Note note.Note
	// Err is the rejection that caused a removal.
	Err error
}

// RemovedMessage is the notification raised when a note is dropped.
func RemovedMessage(n note.Note) string {
	return fmt.Sprintf("Note '%s' was already removed from server.", n.Content)
}

// reconcile applies the result of an update of original to the collection.
// Every failure collapses to removal; there is no distinction between a 404
// and any other rejection.
func reconcile(c *note.Collection, original, returned note.Note, err error) Result {
	if err != nil {
		c.Remove(original.ID)
		return Result{Outcome: Removed, Note: original, Err: err}
	}

	if returned.ID == "" {
		returned.ID = original.ID
	}
	if !c.Replace(original.ID, returned) {
		// Gone locally while the request was out (e.g. a reload); the
		// server still has it.
		c.Upsert(returned)
	}
	return Result{Outcome: Replaced, Note: returned}
}
