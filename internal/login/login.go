package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	client "github.com/henrytill/notes-go/internal/client/notes"
	"github.com/henrytill/notes-go/internal/session"
)

// WrongCredentials is the message shown for every failed login.
const WrongCredentials = "Wrong credentials"

var ErrInProgress = errors.New("login already in progress")

type State int

const (
	LoggedOut State = iota
	Authenticating
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case Authenticating:
		return "authenticating"
	case LoggedIn:
		return "logged in"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
}

type Notifier interface {
	Show(msg string)
}

// Form is the login input. A successful Submit clears it; a failed one leaves
// it untouched for the retry.
type Form struct {
	Username string
	Password string
}

func (f *Form) Reset() {
	f.Username = ""
	f.Password = ""
}

// Flow owns the authentication state and the current credential. Other
// components never read a shared token; they ask the flow for Auth() and pass
// it along explicitly.
type Flow struct {
	auth     Authenticator
	store    *session.Store
	notifier Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	session *session.Session
}

func NewFlow(auth Authenticator, store *session.Store, notifier Notifier, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		auth:     auth,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Restore loads a previously persisted session. A corrupt record is reported
// and the flow stays logged out.
func (f *Flow) Restore() (session.Session, bool, error) {
	sess, ok, err := f.store.Restore()
	if err != nil || !ok {
		return session.Session{}, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Authenticating {
		return session.Session{}, false, ErrInProgress
	}
	f.session = &sess
	f.state = LoggedIn
	return sess, true, nil
}

// Submit logs in with the form's credentials.
func (f *Flow) Submit(ctx context.Context, form *Form) (session.Session, error) {
	f.mu.Lock()
	if f.state == Authenticating {
		f.mu.Unlock()
		return session.Session{}, ErrInProgress
	}
	prev := f.state
	f.state = Authenticating
	f.mu.Unlock()

	sess, err := f.auth.Login(ctx, form.Username, form.Password)
	if err != nil {
		f.setState(prev)
		f.logger.Debug("login failed", "username", form.Username, "error", err)
		f.notifier.Show(WrongCredentials)
		return session.Session{}, err
	}

	if err := f.store.Save(sess); err != nil {
		f.setState(prev)
		return session.Session{}, err
	}

	f.mu.Lock()
	f.session = &sess
	f.state = LoggedIn
	f.mu.Unlock()

	form.Reset()
	f.logger.Debug("logged in", "username", sess.Username)
	return sess, nil
}

func (f *Flow) Login(ctx context.Context, username, password string) (session.Session, error) {
	return f.Submit(ctx, &Form{Username: username, Password: password})
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Session() (session.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return session.Session{}, false
	}
	return *f.session, true
}

// Auth is the credential for mutating API calls: the session's bearer token
// once logged in, anonymous before that.
func (f *Flow) Auth() client.AuthMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return client.NoAuth{}
	}
	return client.BearerAuth{Token: f.session.Token}
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

// Logout forgets the session both in memory and in the store.
func (f *Flow) Logout() error {
	if err := f.store.Clear(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	f.state = LoggedOut
	return nil
}
