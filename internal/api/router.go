package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/gesture-portal/docs"
	"github.com/99minutos/gesture-portal/internal/api/handler"
	"github.com/99minutos/gesture-portal/internal/api/metrics"
	"github.com/99minutos/gesture-portal/internal/api/middleware"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/api/web"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs, built once in main.
type Dependencies struct {
	Auth   ports.AuthService
	Gate   ports.AccessGate
	Cookie sessioncookie.Cookie
	// Health lists the stores checked by /health/ready, keyed by name.
	Health map[string]handler.Pinger
	// Registry receives HTTP and auth metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "gesture_portal",
		Registerer: reg,
	}))

	loadSession := middleware.LoadSession(deps.Gate, deps.Cookie)
	requireSession := middleware.RequireSession(deps.Gate, deps.Cookie)

	// --- HTML pages ---
	// Gated routes carry the middleware individually: a group with an empty
	// prefix would also catch unknown paths and turn 404s into redirects.
	webHandler := handler.NewWebHandler(deps.Auth, deps.Cookie)

	e.GET("/", webHandler.Home, loadSession)
	e.GET("/signup", webHandler.SignupForm, loadSession)
	e.POST("/signup", webHandler.Signup, loadSession)
	e.GET("/login", webHandler.LoginForm, loadSession)
	e.POST("/login", webHandler.Login, loadSession)

	e.GET("/profile", webHandler.Profile, requireSession)
	e.GET("/gesture", webHandler.Gesture, requireSession)
	e.GET("/logout", webHandler.Logout, requireSession)
	e.POST("/logout", webHandler.Logout, requireSession)

	e.StaticFS("/static", web.Static())

	// --- JSON API ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)

	v1 := e.Group("/api/v1")
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout, requireSession)
	v1.GET("/me", authHandler.Me, requireSession)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
