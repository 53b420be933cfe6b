package notes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/henrytill/notes-go/internal/session"
)

// Login exchanges a username and password for a session.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: username,
		Password: password,
	}

	resp, err := c.makeRequest(ctx, http.MethodPost, loginPath, nil, body)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := decode[session.Session](resp, "login")
	if err != nil {
		return session.Session{}, err
	}
	if sess.Token == "" {
		return session.Session{}, fmt.Errorf("%w: login response carries no token", ErrDecode)
	}
	return sess, nil
}
