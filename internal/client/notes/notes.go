package notes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/henrytill/notes-go/internal/note"
)

type Note = note.Note

// GetAll fetches the whole collection. Reads are not authenticated.
func (c *Client) GetAll(ctx context.Context) ([]Note, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, notesPath, nil, nil)
	if err != nil {
		return nil, err
	}

	notes, err := decode[[]Note](resp, "notes list")
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// Create sends a new note and returns the server's copy, id included.
func (c *Client) Create(ctx context.Context, auth AuthMethod, n Note) (Note, error) {
	body := struct {
		Content   string `json:"content"`
		Important bool   `json:"important"`
	}{
		Content:   n.Content,
		Important: n.Important,
	}

	resp, err := c.makeRequest(ctx, http.MethodPost, notesPath, auth, body)
	if err != nil {
		return Note{}, err
	}

	return decode[Note](resp, "create note")
}

// Update replaces the note stored under id with n.
func (c *Client) Update(ctx context.Context, auth AuthMethod, id note.ID, n Note) (Note, error) {
	if id == "" {
		return Note{}, fmt.Errorf("note id must not be empty")
	}
	n.ID = id

	endpoint := fmt.Sprintf("%s/%s", notesPath, url.PathEscape(string(id)))

	resp, err := c.makeRequest(ctx, http.MethodPut, endpoint, auth, n)
	if err != nil {
		return Note{}, err
	}

	return decode[Note](resp, "update note")
}
