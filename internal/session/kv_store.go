package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/UnibsMatt/roomates/internal/store"
)

const (
	sessionKeyPrefix = "roomates:session:"
	adminKeyPrefix   = "roomates:adminpw:"
	cookieKeyPrefix  = "roomates:cookies:"
)

// KVStore persists sessions in the shared KV (redis in production).
type KVStore struct {
	kv  store.KV
	ttl time.Duration
}

func NewKVStore(kv store.KV, ttl time.Duration) *KVStore {
	return &KVStore{kv: kv, ttl: ttl}
}

func (s *KVStore) Load(ctx context.Context, sid string) (*Session, error) {
	raw, err := s.kv.Get(ctx, sessionKeyPrefix+sid)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// Unreadable record: treat as signed out rather than failing the page.
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *KVStore) Save(ctx context.Context, sid string, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+sid, string(raw), s.ttl)
}

func (s *KVStore) Clear(ctx context.Context, sid string) error {
	return s.kv.Del(ctx, sessionKeyPrefix+sid)
}

// AdminCache keeps the admin password under a session-scoped key with a
// short TTL, so a page reload re-authenticates silently but the credential
// does not outlive the visit.
type AdminCache struct {
	kv  store.KV
	ttl time.Duration
}

func NewAdminCache(kv store.KV, ttl time.Duration) *AdminCache {
	return &AdminCache{kv: kv, ttl: ttl}
}

func (c *AdminCache) Get(ctx context.Context, sid string) (string, bool) {
	pw, err := c.kv.Get(ctx, adminKeyPrefix+sid)
	if err != nil || pw == "" {
		return "", false
	}
	return pw, true
}

func (c *AdminCache) Put(ctx context.Context, sid, password string) error {
	return c.kv.Set(ctx, adminKeyPrefix+sid, password, c.ttl)
}

func (c *AdminCache) Drop(ctx context.Context, sid string) error {
	return c.kv.Del(ctx, adminKeyPrefix+sid)
}

// CookieNotice tracks the one-time cookie-banner acknowledgment per visitor.
type CookieNotice struct {
	kv store.KV
}

func NewCookieNotice(kv store.KV) *CookieNotice { return &CookieNotice{kv: kv} }

func (n *CookieNotice) Acknowledged(ctx context.Context, sid string) bool {
	v, err := n.kv.Get(ctx, cookieKeyPrefix+sid)
	return err == nil && v == "true"
}

func (n *CookieNotice) Acknowledge(ctx context.Context, sid string) error {
	return n.kv.Set(ctx, cookieKeyPrefix+sid, "true", 0)
}
