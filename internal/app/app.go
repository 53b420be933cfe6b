// Package app wires the notes client together: session restore, the login
// flow, the note controller and the notification line.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	client "github.com/henrytill/notes-go/internal/client/notes"
	"github.com/henrytill/notes-go/internal/config"
	"github.com/henrytill/notes-go/internal/controller"
	"github.com/henrytill/notes-go/internal/login"
	"github.com/henrytill/notes-go/internal/note"
	"github.com/henrytill/notes-go/internal/notify"
	"github.com/henrytill/notes-go/internal/session"
	"github.com/henrytill/notes-go/internal/storage"
)

type App struct {
	logger   *slog.Logger
	api      *client.Client
	notifier *notify.Notifier
	flow     *login.Flow
	notes    *controller.Controller

	mu              sync.Mutex
	loginForm       login.Form
	showAll         bool
	noteFormVisible bool
}

type Option func(*options)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	storage    storage.Storage
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithStorage replaces the file storage under cfg.StateDir.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

func New(cfg config.Config, opts ...Option) *App {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = client.DefaultTimeout
		}
		o.httpClient = &http.Client{Timeout: timeout}
	}
	if o.storage == nil {
		o.storage = storage.NewFileStorage(cfg.StateDir)
	}

	api := client.NewClient(cfg.APIURL).WithHTTPClient(o.httpClient).WithLogger(o.logger)
	notifier := notify.New(notify.WithTTL(cfg.NotificationTTL))

	return &App{
		logger:   o.logger,
		api:      api,
		notifier: notifier,
		flow:     login.NewFlow(api, session.NewStore(o.storage), notifier, o.logger),
		notes:    controller.New(api, notifier, controller.WithLogger(o.logger)),
		showAll:  true,
	}
}

// Start restores the stored session and loads the notes, concurrently. A
// failed load leaves the collection empty and is only logged; a corrupt
// session is logged and treated as logged out. An unreadable session store
// cancels the load and is returned.
func (a *App) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := a.Restore()
		return err
	})

	g.Go(func() error {
		if err := a.Load(ctx); err != nil {
			a.logger.Warn("initial load failed", "error", err)
		}
		return nil
	})

	return g.Wait()
}

// Restore picks up the stored session, if any. A corrupt record counts as
// no session.
func (a *App) Restore() (bool, error) {
	_, ok, err := a.flow.Restore()
	if errors.Is(err, session.ErrCorrupt) {
		a.logger.Warn("ignoring stored session", "error", err)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Load replaces the collection with the server's notes.
func (a *App) Load(ctx context.Context) error {
	return a.notes.Load(ctx)
}

// Close releases the notification timer.
func (a *App) Close() {
	a.notifier.Close()
}

// SetLoginForm records the username and password being typed.
func (a *App) SetLoginForm(username, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loginForm = login.Form{Username: username, Password: password}
}

func (a *App) LoginForm() login.Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loginForm
}

// Login submits a copy of the login form. The form is cleared on success,
// unless it was edited while the request was out.
func (a *App) Login(ctx context.Context) (session.Session, error) {
	submitted := a.LoginForm()
	form := submitted

	sess, err := a.flow.Submit(ctx, &form)
	if err != nil {
		return session.Session{}, err
	}

	a.mu.Lock()
	if a.loginForm == submitted {
		a.loginForm.Reset()
	}
	a.mu.Unlock()
	return sess, nil
}

func (a *App) Logout() error {
	return a.flow.Logout()
}

func (a *App) User() (session.Session, bool) {
	return a.flow.Session()
}

func (a *App) LoginState() login.State {
	return a.flow.State()
}

// Token is the bearer token mutating calls currently carry, empty when
// logged out.
func (a *App) Token() string {
	if bearer, ok := a.flow.Auth().(client.BearerAuth); ok {
		return bearer.Token
	}
	return ""
}

// ShowNoteForm opens the new-note form.
func (a *App) ShowNoteForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.noteFormVisible = true
}

func (a *App) NoteFormVisible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.noteFormVisible
}

// AddNote hides the form straight away and then creates the note. The form
// stays hidden when the create fails.
func (a *App) AddNote(ctx context.Context, content string, important bool) (note.Note, error) {
	a.mu.Lock()
	a.noteFormVisible = false
	a.mu.Unlock()

	created, err := a.notes.Create(ctx, a.flow.Auth(), content, important)
	if err != nil {
		a.logger.Debug("create failed", "error", err)
		return note.Note{}, err
	}
	return created, nil
}

func (a *App) ToggleImportance(ctx context.Context, id note.ID) (controller.Result, error) {
	return a.notes.ToggleImportance(ctx, a.flow.Auth(), id)
}

func (a *App) ShowAll() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.showAll
}

// SetShowAll picks between all notes and important notes. Nothing is
// fetched.
func (a *App) SetShowAll(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showAll = v
}

func (a *App) ToggleShowAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showAll = !a.showAll
}

// NotesToShow is the current view of the collection.
func (a *App) NotesToShow() []note.Note {
	return a.notes.Visible(a.ShowAll())
}

// Query filters the whole collection with pred.
func (a *App) Query(pred note.Predicate) []note.Note {
	return a.notes.Query(pred)
}

func (a *App) Notes() []note.Note {
	return a.notes.Notes()
}

func (a *App) Notification() string {
	return a.notifier.Current()
}

// OnNotification registers fn for every change of the notification line.
func (a *App) OnNotification(fn func(string)) {
	a.notifier.Subscribe(fn)
}
