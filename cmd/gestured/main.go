// Command gestured serves the gesture portal.
//
// @title                       Gesture Portal API
// @version                     1.0
// @description                 Account signup, login and session management for the gesture portal.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/99minutos/gesture-portal/internal/app"
	"github.com/99minutos/gesture-portal/internal/infrastructure/httpserver"
	"github.com/99minutos/gesture-portal/internal/pkg/config"
	"github.com/99minutos/gesture-portal/pkg/logger"
)

const serviceName = "gesture-portal"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().RunContext(ctx, os.Args)
	cancel()
	if err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "gestured",
		Usage: "Session-authenticated gesture recognition portal",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
	}
}

// reportFailure logs err through the process logger, or to w when the
// failure happened before the logger was initialised.
func reportFailure(w io.Writer, err error) {
	log := logger.OrFallback(w)
	log.Error().Err(err).Msg("application failed")
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c.Context)
			if err != nil {
				return err
			}

			a, err := app.New(c.Context, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Warn().Err(err).Msg("closing stores")
				}
			}()

			log.Info().
				Str("port", cfg.Port).
				Str("store", cfg.Store.Driver).
				Str("session_store", cfg.Session.Store).
				Msg("gesture portal ready")
			return httpserver.Serve(c.Context, ":"+cfg.Port, a.Router, log)
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply account store migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c.Context)
			if err != nil {
				return err
			}
			if err := app.Migrate(c.Context, cfg); err != nil {
				return err
			}
			log.Info().Str("store", cfg.Store.Driver).Msg("migrations applied")
			return nil
		},
	}
}
