package ports

import (
	"context"
	"time"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// Session is an authenticated browser session. Token is the opaque value
// carried by the session cookie.
type Session struct {
	Token     string
	Username  string
	Role      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore persists sessions between requests. Implementations: Redis
// (shared across instances) and in-memory (single process).
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	// Find returns domain.ErrInvalidSession for unknown or expired tokens.
	Find(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// LoginResult is returned on successful authentication: a cookie session for
// web flows plus a signed bearer token for API clients.
type LoginResult struct {
	Session *Session
	Token   string
	User    *domain.User
}

// AuthService implements registration, login, and session resolution.
type AuthService interface {
	// Register creates a USER-role principal. Returns domain.ErrUserExists
	// when the username is taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials via bcrypt. Unknown username and wrong
	// password both collapse to domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Logout destroys the session for the given token.
	Logout(ctx context.Context, token string) error

	// ResolveSession maps a session cookie token to its session, or
	// domain.ErrInvalidSession.
	ResolveSession(ctx context.Context, token string) (*Session, error)

	// ResolveBearer validates a signed API token and returns the equivalent
	// caller identity.
	ResolveBearer(token string) (*Session, error)
}
