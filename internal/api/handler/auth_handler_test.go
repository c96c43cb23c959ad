package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/squadbase/player-catalog/internal/api/middleware"
	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// stubAuthService is a canned ports.AuthService for handler tests.
type stubAuthService struct {
	registered  map[string]bool
	password    string
	loggedOut   []string
	failLogin   bool
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{registered: map[string]bool{}, password: "pass123"}
}

func (s *stubAuthService) Register(_ context.Context, username, password string) (*domain.User, error) {
	if s.registered[username] {
		return nil, domain.ErrUserExists
	}
	s.registered[username] = true
	return &domain.User{Username: username, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	if s.failLogin || password != s.password {
		return nil, domain.ErrInvalidCredentials
	}
	now := time.Now()
	return &ports.LoginResult{
		Session: &ports.Session{
			Token:     "sess_test",
			Username:  username,
			Role:      domain.RoleUser,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		},
		Token: "jwt_test",
		User:  &domain.User{Username: username, Role: domain.RoleUser},
	}, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func (s *stubAuthService) ResolveSession(context.Context, string) (*ports.Session, error) {
	return nil, domain.ErrInvalidSession
}

func (s *stubAuthService) ResolveBearer(string) (*ports.Session, error) {
	return nil, domain.ErrInvalidSession
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == apimiddleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), false)

	body := `{"username":"alice","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newHandlerContext(t, req)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "jwt_test" {
		t.Fatalf("expected bearer token in response: %+v", resp)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "sess_test" {
		t.Fatalf("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestAuthHandler_Login_FormRedirects(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), false)

	form := "username=alice&password=pass123"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c, rec := newHandlerContext(t, req)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/overview" {
		t.Fatalf("expected redirect to /overview, got %s", loc)
	}
}

func TestAuthHandler_Login_BadCredentialsJSON(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), false)

	body := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newHandlerContext(t, req)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentialsFormRedirectsBack(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), false)

	form := "username=alice&password=wrong"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c, rec := newHandlerContext(t, req)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("failed form login should bounce back to /login, got %d %s",
			rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), false)

	body := `{"username":"alice","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newHandlerContext(t, req)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := newStubAuthService()
	svc.registered["alice"] = true
	h := NewAuthHandler(svc, false)

	body := `{"username":"alice","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newHandlerContext(t, req)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := newStubAuthService()
	h := NewAuthHandler(svc, false)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	c, rec := newHandlerContext(t, req)
	c.Set("session_token", "sess_test")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "sess_test" {
		t.Fatalf("session not destroyed: %v", svc.loggedOut)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("session cookie not cleared")
	}
}
