package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, carried in the request context.
type Identity struct {
	SessionID string
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// SessionManager issues, looks up and destroys sessions.
type SessionManager struct {
	tokens *TokenService
	store  SessionStore
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager wires the token signer to a session store.
func NewSessionManager(tokens *TokenService, store SessionStore, ttl time.Duration) *SessionManager {
	return &SessionManager{tokens: tokens, store: store, ttl: ttl, now: time.Now}
}

// Issue creates a session for the user and returns the cookie token.
func (m *SessionManager) Issue(ctx context.Context, userID uint, username string) (string, Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return "", Session{}, fmt.Errorf("save session: %w", err)
	}
	token, err := m.tokens.Sign(sess.ID, userID, sess.ExpiresAt)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return "", Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, sess, nil
}

// Lookup resolves verified claims to an identity. ErrSessionNotFound is
// returned when the session was destroyed or belongs to someone else.
func (m *SessionManager) Lookup(ctx context.Context, claims *Claims) (Identity, error) {
	sess, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return Identity{}, err
	}
	if sess.UserID != claims.UserID {
		return Identity{}, ErrSessionNotFound
	}
	return Identity{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Destroy deletes the session behind token. Unknown, expired or malformed
// tokens are not an error since there is nothing left to destroy.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
