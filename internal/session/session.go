package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/henrytill/notes-go/internal/storage"
)

// Key is the storage key the logged-in user is kept under.
const Key = "loggedNoteappUser"

var ErrCorrupt = errors.New("stored session is corrupt")

// Session is the client-held proof of authentication.
type Session struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

type Store struct {
	storage storage.Storage
}

func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Restore reads the persisted session, if any. The token is not checked
// against the server.
func (s *Store) Restore() (Session, bool, error) {
	raw, ok, err := s.storage.Get(Key)
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || raw == "" {
		return Session{}, false, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if sess.Token == "" {
		return Session{}, false, fmt.Errorf("%w: missing token", ErrCorrupt)
	}

	return sess, true, nil
}

func (s *Store) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.storage.Set(Key, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear forgets the persisted session; afterwards Restore reports none.
func (s *Store) Clear() error {
	if err := s.storage.Delete(Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
