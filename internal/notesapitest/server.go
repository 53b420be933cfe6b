// Package notesapitest runs an in-memory notes API for tests.
package notesapitest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/henrytill/notes-go/internal/note"
	"github.com/henrytill/notes-go/internal/session"
)

type User struct {
	Username string
	Name     string
	Password string
	Token    string
}

// Request is what the server saw for one handled call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Status        int
}

// Server is a notes backend honouring the documented contract: anonymous
// reads, bearer-authenticated creates, 404 on updates of unknown ids.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	notes    []note.Note
	users    map[string]User
	nextID   int
	requests []Request
	// Hook, when set, runs before routing; returning true means it has
	// written the response.
	hook func(w http.ResponseWriter, r *http.Request) bool
}

func NewServer(notes ...note.Note) *Server {
	s := &Server{
		notes:  append([]note.Note(nil), notes...),
		users:  make(map[string]User),
		nextID: 1,
	}
	for _, n := range notes {
		if id, err := strconv.Atoi(string(n.ID)); err == nil && id >= s.nextID {
			s.nextID = id + 1
		}
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.Methods(http.MethodGet).Path("/api/notes").HandlerFunc(s.getAll)
	r.Methods(http.MethodPost).Path("/api/notes").HandlerFunc(s.create)
	r.Methods(http.MethodPut).Path("/api/notes/{id}").HandlerFunc(s.update)
	r.Methods(http.MethodPost).Path("/api/login").HandlerFunc(s.login)

	s.Server = httptest.NewServer(r)
	return s
}

func (s *Server) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
}

// Delete removes a note behind the client's back.
func (s *Server) Delete(id note.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}

func (s *Server) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]note.Note(nil), s.notes...)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Hook installs fn in front of the router.
func (s *Server) Hook(fn func(w http.ResponseWriter, r *http.Request) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		hook := s.hook
		s.mu.Unlock()

		handler := next
		if hook != nil {
			handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !hook(w, r) {
					next.ServeHTTP(w, r)
				}
			})
		}

		m := httpsnoop.CaptureMetrics(handler, w, r)
		slog.Debug("handled", "method", r.Method, "url", r.URL, "duration", m.Duration, "status", m.Code)

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Status:        m.Code,
		})
		s.mu.Unlock()
	})
}

func (s *Server) getAll(w http.ResponseWriter, _ *http.Request) {
	notes := s.Notes()
	if notes == nil {
		notes = []note.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "token missing or invalid")
		return
	}

	var body note.Note
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		writeError(w, http.StatusBadRequest, "content missing")
		return
	}

	s.mu.Lock()
	body.ID = note.ID(strconv.Itoa(s.nextID))
	s.nextID++
	s.notes = append(s.notes, body)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := note.ID(mux.Vars(r)["id"])

	var body note.Note
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformatted body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.ID == id {
			s.notes[i] = note.Note{ID: id, Content: body.Content, Important: body.Important}
			writeJSON(w, http.StatusOK, s.notes[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "note not found")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformatted body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[body.Username]
	s.mu.Unlock()
	if !ok || u.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, session.Session{Username: u.Username, Name: u.Name, Token: u.Token})
}

func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return false
	}
	token := header[len("bearer "):]

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Token != "" && u.Token == token {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
