// Package app assembles the stores, services and router from configuration.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/99minutos/gesture-portal/internal/api"
	"github.com/99minutos/gesture-portal/internal/api/handler"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/core/ports"
	"github.com/99minutos/gesture-portal/internal/core/service"
	mongostore "github.com/99minutos/gesture-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/gesture-portal/internal/infrastructure/db/redis"
	"github.com/99minutos/gesture-portal/internal/infrastructure/db/sqlite"
	"github.com/99minutos/gesture-portal/internal/infrastructure/memstore"
	"github.com/99minutos/gesture-portal/internal/pkg/config"
	"github.com/99minutos/gesture-portal/internal/pkg/password"
)

// App is a fully wired server. Close releases every store it opened.
type App struct {
	Router  *echo.Echo
	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// accountStore is what the app needs from a credential store driver.
type accountStore interface {
	ports.AccountRepository
	handler.Pinger
}

type sessionStore interface {
	ports.SessionStore
	handler.Pinger
}

// New opens the configured stores and builds the router. On error anything
// already opened is closed.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	accounts, err := a.openAccountStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sessions, err := a.openSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret, err := sessionSecret(cfg, log)
	if err != nil {
		return nil, err
	}

	sessionManager := service.NewSessionService(sessions, secret)
	authService, err := service.NewAuthService(accounts, password.NewBcrypt(cfg.Session.BcryptCost), sessionManager, log)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router, err := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Gate:   service.NewAccessGate(sessionManager, accounts),
		Cookie: sessioncookie.Cookie{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Health: map[string]handler.Pinger{
			"account_store": accounts,
			"session_store": sessions,
		},
		Registry: reg,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	a.Router = router
	return a, nil
}

// Migrate applies the account store schema and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	a := &App{}
	defer a.Close()
	_, err := a.openAccountStore(ctx, cfg)
	return err
}

// openAccountStore connects the configured driver and brings its schema up to date.
func (a *App) openAccountStore(ctx context.Context, cfg *config.Config) (accountStore, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return mongostore.Disconnect(client) })

		repo := mongostore.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Store.SQLitePath})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		if err := sqlite.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return sqlite.NewAccountRepository(db), nil
	}
}

func (a *App) openSessionStore(ctx context.Context, cfg *config.Config) (sessionStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisstore.NewSessionStore(client), nil
	default:
		store, err := memstore.NewSessionStore(ctx, cfg.Session.CacheShards)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	}
}

// sessionSecret returns the configured signing secret. Development runs
// without one get a random per-process secret, so sessions do not survive a
// restart.
func sessionSecret(cfg *config.Config, log zerolog.Logger) (string, error) {
	if cfg.Session.Secret != "" {
		return cfg.Session.Secret, nil
	}
	if !cfg.IsDevelopment() {
		return "", fmt.Errorf("SESSION_SECRET is required when ENV=%s", cfg.Env)
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	log.Warn().Msg("SESSION_SECRET not set; using a random secret for this process")
	return hex.EncodeToString(buf), nil
}
