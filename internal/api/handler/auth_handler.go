package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/squadbase/player-catalog/internal/api/metrics"
	apimiddleware "github.com/squadbase/player-catalog/internal/api/middleware"
	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginForm handles GET /login. The front end renders the form itself; this
// endpoint only reports whether the caller is already signed in.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	caller := apimiddleware.Caller(c)
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": caller.IsAuthenticated(),
		"username":      caller.Username,
	})
}

// Login handles POST /login.
//
// @Summary      Authenticate and open a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if isFormSubmission(c) {
			// failed browser login goes back to the form, never a bare 401 page
			return c.Redirect(http.StatusFound, "/login")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, result.Session)

	if isFormSubmission(c) {
		return c.Redirect(http.StatusFound, "/overview")
	}
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, User: result.User})
}

// RegisterForm handles GET /register, mirroring LoginForm.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	caller := apimiddleware.Caller(c)
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": caller.IsAuthenticated(),
		"username":      caller.Username,
	})
}

// Register handles POST /register.
//
// @Summary      Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	if isFormSubmission(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.JSON(http.StatusCreated, map[string]string{"username": user.Username, "role": user.Role})
}

// Logout handles POST /logout — destroys the session and clears the cookie.
//
// @Summary      End the current session
// @Tags         auth
// @Success      302
// @Failure      401  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("session_token").(string)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	h.clearSessionCookie(c)

	if isFormSubmission(c) || !wantsJSONResponse(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, session *ports.Session) {
	c.SetCookie(&http.Cookie{
		Name:     apimiddleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     apimiddleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func wantsJSONResponse(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON)
}
