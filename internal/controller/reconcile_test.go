package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/henrytill/notes-go/internal/note"
)

func TestReconcile(t *testing.T) {
	original := note.Note{ID: "1", Content: "A"}

	t.Run("replaced", func(t *testing.T) {
		c := note.NewCollection()
		c.Reset([]note.Note{original, {ID: "2"}})

		res := reconcile(c, original, note.Note{ID: "1", Content: "A", Important: true}, nil)
		assert.Equal(t, Replaced, res.Outcome)
		assert.Equal(t, []note.Note{{ID: "1", Content: "A", Important: true}, {ID: "2"}}, c.Notes())
	})

	t.Run("replaced without id keeps original id", func(t *testing.T) {
		c := note.NewCollection()
		c.Reset([]note.Note{original})

		res := reconcile(c, original, note.Note{Content: "A", Important: true}, nil)
		assert.Equal(t, note.ID("1"), res.Note.ID)
		assert.Equal(t, []note.Note{{ID: "1", Content: "A", Important: true}}, c.Notes())
	})

	t.Run("replaced after local removal", func(t *testing.T) {
		c := note.NewCollection()

		res := reconcile(c, original, note.Note{ID: "1", Content: "A", Important: true}, nil)
		assert.Equal(t, Replaced, res.Outcome)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("removed", func(t *testing.T) {
		c := note.NewCollection()
		c.Reset([]note.Note{{ID: "0"}, original, {ID: "2"}})
		failure := errors.New("gone")

		res := reconcile(c, original, note.Note{}, failure)
		assert.Equal(t, Removed, res.Outcome)
		assert.Equal(t, original, res.Note)
		assert.Equal(t, failure, res.Err)
		assert.Equal(t, []note.Note{{ID: "0"}, {ID: "2"}}, c.Notes())
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "Outcome(0)", Outcome(0).String())
}
