package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// AuthService implements registration, login, and session management.
// Successful logins produce both a cookie session (web flows) and a signed
// bearer token (API clients).
type AuthService struct {
	repo       ports.UserRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// Register creates a new USER-role principal. Self-registration never grants
// admin; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies credentials and opens a session. Unknown username and wrong
// password both return ErrInvalidCredentials so the response does not leak
// which one failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Session: session, Token: token, User: user}, nil
}

// Logout destroys the session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// ResolveSession maps a cookie token to its live session.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*ports.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidSession
	}
	return s.sessions.Find(ctx, token)
}

// ResolveBearer validates a signed API token and returns the equivalent
// caller identity. Bearer identities are not stored server-side, so logout
// does not revoke them before expiry.
func (s *AuthService) ResolveBearer(token string) (*ports.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidSession
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" {
		return nil, domain.ErrInvalidSession
	}

	return &ports.Session{Username: username, Role: role}, nil
}

func (s *AuthService) createSession(ctx context.Context, user *domain.User) (*ports.Session, error) {
	now := time.Now().UTC()
	session := &ports.Session{
		Token:     generateSessionToken(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func generateSessionToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("sess_%d", time.Now().UnixNano())
	}
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
