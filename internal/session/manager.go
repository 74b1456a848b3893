package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
)

// AuthBackend is the slice of the API client the manager exchanges
// credentials with.
type AuthBackend interface {
	Register(ctx context.Context, name, email, password string) (*api.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Logout(ctx context.Context, token string) error
}

// Manager owns the login/register/logout lifecycle. It is the only writer of
// session state; views just read it.
type Manager struct {
	backend AuthBackend
	store   Store
	logger  *zap.Logger
}

func NewManager(backend AuthBackend, store Store, logger *zap.Logger) *Manager {
	return &Manager{backend: backend, store: store, logger: logger}
}

// Current returns the stored session for sid, or ErrNoSession.
func (m *Manager) Current(ctx context.Context, sid string) (*Session, error) {
	return m.store.Load(ctx, sid)
}

func (m *Manager) Login(ctx context.Context, sid, email, password string) (*Session, error) {
	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.persist(ctx, sid, resp)
}

func (m *Manager) Register(ctx context.Context, sid, name, email, password string) (*Session, error) {
	resp, err := m.backend.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return m.persist(ctx, sid, resp)
}

// Logout invalidates the token server-side when one is present, then clears
// local state. The backend call is best-effort: its failure never keeps the
// visitor signed in.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	sess, err := m.store.Load(ctx, sid)
	if err == nil && sess.Token != "" {
		if err := m.backend.Logout(ctx, sess.Token); err != nil {
			m.logger.Debug("server-side logout failed, clearing locally anyway", zap.Error(err))
		}
	}
	return m.store.Clear(ctx, sid)
}

func (m *Manager) persist(ctx context.Context, sid string, resp *api.TokenResponse) (*Session, error) {
	sess := &Session{
		Token:  resp.Token,
		UserID: resp.UserID,
		Email:  resp.Email,
		Name:   resp.Name,
	}
	if err := m.store.Save(ctx, sid, sess); err != nil {
		return nil, err
	}
	m.logger.Info("session established", zap.Int64("user_id", sess.UserID))
	return sess, nil
}
