// cmd/server/serve.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/database"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/router"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "override SERVER_PORT", EnvVars: []string{"PORT"}},
			&cli.BoolFlag{Name: "migrate", Usage: "run database migrations before serving", Value: true},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port := c.String("port"); port != "" {
		cfg.Server.Port = port
	}

	log := newLogger(cfg)

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}

	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if c.Bool("migrate") {
			if err := database.RunMigrations(db); err != nil {
				return err
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := router.NewServices(cfg, db, log)
	if err != nil {
		return err
	}
	go svc.Carts.RunJanitor(ctx, cfg.Cart.SweepInterval, cfg.Cart.IdleTTL)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Initialize(ctx, cfg, svc, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := svc.Carts.Flush(shutdownCtx); err != nil {
		log.WithError(err).Warn("Cart snapshots still pending at shutdown")
	}

	log.Info("Server exited")
	return nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the orders and cart snapshot tables",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			newLogger(cfg)

			db, err := database.Initialize(cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.RunMigrations(db)
		},
	}
}
