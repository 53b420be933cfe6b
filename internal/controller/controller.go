// Package controller keeps the local note collection in step with the
// server.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	client "github.com/henrytill/notes-go/internal/client/notes"
	"github.com/henrytill/notes-go/internal/note"
)

var (
	ErrInFlight     = errors.New("an update for this note is already in flight")
	ErrUnknownNote  = errors.New("unknown note")
	ErrEmptyContent = errors.New("note content must not be empty")
)

// API is the part of the notes client the controller drives.
type API interface {
	GetAll(ctx context.Context) ([]note.Note, error)
	Create(ctx context.Context, auth client.AuthMethod, n note.Note) (note.Note, error)
	Update(ctx context.Context, auth client.AuthMethod, id note.ID, n note.Note) (note.Note, error)
}

type Notifier interface {
	Show(msg string)
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the client-side collection. The mutex is never held
// across a network call; only completed results touch the collection.
type Controller struct {
	api      API
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	notes    *note.Collection
	inflight *guard
}

func New(api API, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		notifier: notifier,
		logger:   slog.Default(),
		notes:    note.NewCollection(),
		inflight: newGuard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the collection with the server's. On failure the collection
// is left as it was.
func (c *Controller) Load(ctx context.Context) error {
	notes, err := c.api.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	c.mu.Lock()
	c.notes.Reset(notes)
	c.mu.Unlock()

	c.logger.Debug("notes loaded", "count", len(notes))
	return nil
}

// Create sends a new note and appends the server's copy. Nothing is added
// locally when the server refuses it.
func (c *Controller) Create(ctx context.Context, auth client.AuthMethod, content string, important bool) (note.Note, error) {
	content = note.NormalizeContent(content)
	if content == "" {
		return note.Note{}, ErrEmptyContent
	}

	created, err := c.api.Create(ctx, auth, note.Note{Content: content, Important: important})
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	c.mu.Lock()
	c.notes.Upsert(created)
	c.mu.Unlock()

	return created, nil
}

// ToggleImportance flips the important flag of note id on the server and
// reconciles the local collection with the outcome. A rejected update is not
// an error: it yields a Removed result and a notification.
func (c *Controller) ToggleImportance(ctx context.Context, auth client.AuthMethod, id note.ID) (Result, error) {
	if !c.inflight.acquire(id) {
		return Result{}, fmt.Errorf("%w: %s", ErrInFlight, id)
	}
	defer c.inflight.release(id)

	c.mu.Lock()
	original, ok := c.notes.Get(id)
	c.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownNote, id)
	}

	returned, err := c.api.Update(ctx, auth, id, original.WithImportance(!original.Important))

	c.mu.Lock()
	res := reconcile(c.notes, original, returned, err)
	c.mu.Unlock()

	switch res.Outcome {
	case Replaced:
		c.logger.Debug("note updated", "id", id, "important", res.Note.Important)
	case Removed:
		c.logger.Debug("note dropped after rejected update", "id", id, "error", err)
		c.notifier.Show(RemovedMessage(original))
	}

	return res, nil
}

// Visible is the displayed view: every note, or only the important ones.
func (c *Controller) Visible(showAll bool) []note.Note {
	if showAll {
		return c.Query(note.All)
	}
	return c.Query(note.ImportantOnly)
}

// Query returns the notes matching pred, in collection order.
func (c *Controller) Query(pred note.Predicate) []note.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes.Filter(pred)
}

func (c *Controller) Notes() []note.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes.Notes()
}

func (c *Controller) Get(id note.ID) (note.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes.Get(id)
}
