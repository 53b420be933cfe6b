package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrytill/notes-go/internal/note"
	"github.com/henrytill/notes-go/internal/notesapitest"
	"github.com/henrytill/notes-go/internal/testutil"
)

var alice = notesapitest.User{Username: "alice", Name: "Alice", Password: "s3cret", Token: "tok-alice"}

type result struct {
	code   int
	stdout string
	stderr string
}

type harness struct {
	t        *testing.T
	srv      *notesapitest.Server
	stateDir string
}

func newHarness(t *testing.T, notes ...note.Note) *harness {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTES_API_URL", "")
	t.Setenv("NOTES_STATE_DIR", "")

	srv := notesapitest.NewServer(notes...)
	t.Cleanup(srv.Close)
	srv.AddUser(alice)

	return &harness{t: t, srv: srv, stateDir: t.TempDir()}
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()

	full := append([]string{"--api-url", h.srv.URL, "--state-dir", h.stateDir}, args...)
	var stdout, stderr bytes.Buffer
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (h *harness) login() {
	h.t.Helper()
	res := h.run("", "login", "-u", alice.Username, "-p", alice.Password)
	require.Equal(h.t, 0, res.code, res.stderr)
}

func sampleNotes() []note.Note {
	return []note.Note{
		{ID: "1", Content: "HTML is easy", Important: false},
		{ID: "2", Content: "Browser can execute only JavaScript", Important: true},
		{ID: "3", Content: "GET and POST are the most important methods of HTTP protocol", Important: true},
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "version")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "notes "+version+"\n", res.stdout)
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "whoami")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "not logged in\n", res.stdout)

	res = h.run("", "login", "-u", "alice", "-p", "s3cret")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Alice logged in\n", res.stdout)

	res = h.run("", "whoami")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "Alice (alice)\n", res.stdout)

	res = h.run("", "logout")
	require.Equal(t, 0, res.code, res.stderr)

	res = h.run("", "whoami")
	assert.Equal(t, "not logged in\n", res.stdout)
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)

	res := h.run("s3cret\n", "login", "-u", "alice")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Alice logged in\n", res.stdout)
}

func TestLoginWrongCredentials(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "login", "-u", "alice", "-p", "wrong")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Wrong credentials")
	assert.NotContains(t, res.stderr, "Error:")

	_, err := os.Stat(filepath.Join(h.stateDir, "loggedNoteappUser"))
	assert.True(t, os.IsNotExist(err), "no session should be stored")
}

func TestLoginRequiresUsername(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "login", "-p", "s3cret")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestListJSON(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	res := h.run("", "list", "-t", "json")
	require.Equal(t, 0, res.code, res.stderr)
	testutil.CompareGolden(t, []byte(res.stdout), filepath.Join("testdata", "list.json"))
}

func TestListImportantAndWhere(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	res := h.run("", "list", "--important", "-t", "json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "HTML is easy")
	assert.Contains(t, res.stdout, "Browser can execute only JavaScript")

	res = h.run("", "list", "--important", "--where", `content contains "HTTP"`, "-t", "json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "Browser")
	assert.Contains(t, res.stdout, "GET and POST")
}

func TestListText(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	res := h.run("", "list")
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "HTML is easy")
	assert.Contains(t, lines[0], "(1)")
	assert.Contains(t, lines[1], "★")
}

func TestListRejectsBadInput(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	res := h.run("", "list", "-t", "markdown")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "cannot be used for output")

	res = h.run("", "list", "--where", "content +")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestAddRequiresLogin(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "add", "a new note")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
	assert.Empty(t, h.srv.Notes())
}

func TestAdd(t *testing.T) {
	h := newHarness(t, sampleNotes()...)
	h.login()

	res := h.run("", "add", "  a new note ", "--important")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"id":"4","content":"a new note","important":true}`, res.stdout)

	notes := h.srv.Notes()
	require.Len(t, notes, 4)
	assert.Equal(t, note.Note{ID: "4", Content: "a new note", Important: true}, notes[3])

	var sawToken bool
	for _, r := range h.srv.Requests() {
		if r.Method == http.MethodPost && r.Path == "/api/notes" {
			sawToken = r.Authorization == "bearer "+alice.Token
		}
	}
	assert.True(t, sawToken, "create should carry the stored token")
}

func TestToggle(t *testing.T) {
	h := newHarness(t, sampleNotes()...)
	h.login()

	res := h.run("", "toggle", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"id":"1","content":"HTML is easy","important":true}`, res.stdout)
	assert.True(t, h.srv.Notes()[0].Important)
}

func TestToggleRemovedOnServer(t *testing.T) {
	h := newHarness(t, sampleNotes()...)
	h.srv.Hook(func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method != http.MethodPut {
			return false
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"note not found"}`))
		return true
	})

	res := h.run("", "toggle", "2")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Note 'Browser can execute only JavaScript' was already removed from server.")
	assert.NotContains(t, res.stderr, "Error:")
}

func TestToggleUnknownID(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	res := h.run("", "toggle", "42")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestImport(t *testing.T) {
	h := newHarness(t)
	h.login()

	path := filepath.Join(t.TempDir(), "notes.md")
	doc := "- [x] pack the tent\n- [ ] buy stove fuel\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	res := h.run("", "import", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "imported 2 notes\n", res.stdout)

	assert.Equal(t, []note.Note{
		{ID: "1", Content: "pack the tent", Important: true},
		{ID: "2", Content: "buy stove fuel", Important: false},
	}, h.srv.Notes())
}

func TestImportExplicitFormat(t *testing.T) {
	h := newHarness(t)
	h.login()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(`[{"content":"from json","important":false}]`), 0644))

	res := h.run("", "import", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "cannot detect format")

	res = h.run("", "import", "-f", "json", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "imported 1 notes\n", res.stdout)
	assert.Equal(t, "from json", h.srv.Notes()[0].Content)
}

func TestConfigFileSetsAPIURL(t *testing.T) {
	h := newHarness(t, sampleNotes()...)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api_url: "+h.srv.URL+"\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "--state-dir", h.stateDir, "list", "-t", "json"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "HTML is easy")
}
