package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNetwork  = errors.New("network error")
	ErrAuth     = errors.New("not authorized")
	ErrNotFound = errors.New("not found")
	ErrServer   = errors.New("server error")
	ErrDecode   = errors.New("malformed response")
)

const maxErrorBody = 4 << 10

// StatusError is returned for every non-2xx response. It matches one of
// ErrAuth, ErrNotFound or ErrServer under errors.Is.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: API request failed with status %d", e.Method, e.Path, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

func newStatusError(method, path string, resp *http.Response) *StatusError {
	serr := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return serr
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		serr.Message = body.Error
	}
	return serr
}
