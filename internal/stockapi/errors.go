package stockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingField is returned when a 2xx response lacks the value asked for.
var ErrMissingField = errors.New("missing field in response")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's "error" field, or the raw body when it has none.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// newAPIError reads at most 2KiB of body to describe the failure.
func newAPIError(method, path string, status int, body io.Reader) *APIError {
	b, _ := io.ReadAll(io.LimitReader(body, 2<<10))
	msg := strings.TrimSpace(string(b))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{Method: method, Path: path, StatusCode: status, Message: msg}
}
