package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexanderramin/workhub/internal/repository"
)

var (
	// ErrUnavailable indicates the WorkHub backend could not be reached.
	ErrUnavailable = errors.New("workhub api unavailable")

	// ErrTimeout indicates a request exceeded the configured timeout.
	ErrTimeout = errors.New("workhub api request timed out")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// Unwrap lets callers match a 404 with repository.ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return repository.ErrNotFound
	}
	return nil
}

func errorCode(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &se):
		return fmt.Sprintf("HTTP_%d", se.Status)
	default:
		return "UNKNOWN"
	}
}
