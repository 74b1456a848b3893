// Package session holds the client-side credential state: who the visitor
// is, the opaque backend token, the cached admin password and the one-time
// cookie-notice flag. Everything is keyed by an opaque session id carried in
// a browser cookie.
package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned when a session id has no stored session.
var ErrNoSession = errors.New("no session")

// Session is the client-held credential and profile of the authenticated
// user. The token is opaque; it is attached to backend calls as-is.
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Store is the read/write boundary for sessions so tests can swap in an
// in-memory fake.
type Store interface {
	Load(ctx context.Context, sid string) (*Session, error)
	Save(ctx context.Context, sid string, s *Session) error
	Clear(ctx context.Context, sid string) error
}
