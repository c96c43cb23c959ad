package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/squadbase/player-catalog/internal/api/handler"
	"github.com/squadbase/player-catalog/internal/api/middleware"
	"github.com/squadbase/player-catalog/internal/core/ports"
	"github.com/squadbase/player-catalog/internal/core/service"
)

// Deps carries everything the router needs to assemble the service graph.
type Deps struct {
	Players    ports.PlayerRepository
	Users      ports.UserRepository
	Sessions   ports.SessionStore
	JWTSecret  string
	SessionTTL time.Duration
	// SecureCookies marks session cookies Secure (set outside development).
	SecureCookies bool
	// HealthPingers are optional backend connectivity checks keyed by name.
	HealthPingers map[string]handler.Pinger

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Sessions, deps.JWTSecret, deps.SessionTTL)
	queryService := service.NewPlayerQueryService(deps.Players, deps.Logger)
	mutationService := service.NewPlayerMutationService(deps.Players, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, deps.SecureCookies)
	playerHandler := handler.NewPlayerHandler(queryService, mutationService)
	healthHandler := handler.NewHealthHandler(deps.Players, deps.HealthPingers)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.Use(middleware.Session(authService))

	// --- Catalog routes ---
	e.GET("/", playerHandler.List)
	e.GET("/overview", playerHandler.Overview, middleware.RequireAuth)
	e.GET("/detail/:id", playerHandler.Detail, middleware.RequireAuth)
	e.GET("/edit/:id", playerHandler.EditForm, middleware.RequireAdmin())
	e.POST("/edit/:id", playerHandler.EditSubmit, middleware.RequireAdmin())

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout, middleware.RequireAuth)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
