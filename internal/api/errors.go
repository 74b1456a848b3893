package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any backend 401 via errors.Is. Callers use it to
// tell a bad credential apart from a generic request failure.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx backend response normalized into one error value.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend %d: %s", e.Status, e.Detail)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// newError extracts the server-supplied message from a failure body.
// The backend usually answers {"detail": "..."}; the standalone applications
// service answers raw text. Anything unreadable falls back to a generic
// message so callers always have something to show.
func newError(status int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &Error{Status: status, Detail: payload.Detail}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return &Error{Status: status, Detail: text}
	}
	if status == http.StatusUnauthorized {
		return &Error{Status: status, Detail: "Unauthorized"}
	}
	return &Error{Status: status, Detail: fmt.Sprintf("request failed (%d)", status)}
}
