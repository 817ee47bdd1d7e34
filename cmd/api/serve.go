package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dog-care-api/internal/adapters/auth/odin"
	"dog-care-api/internal/adapters/files/local"
	pg "dog-care-api/internal/adapters/storage/postgres"
	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/router"

	"github.com/jmoiron/sqlx"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfgPath string) error {
	cfg, log, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sqlx.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("using postgres store", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	opts := router.Options{
		Config: cfg,
		Logger: log,
		DB:     db,
		Files:  local.New(cfg.Media.Dir, cfg.Media.BaseURL),
	}
	if cfg.Auth.Mode == config.AuthModeOdin {
		c, err := odin.NewClient(cfg.Auth.Odin)
		if err != nil {
			return fmt.Errorf("odin client: %w", err)
		}
		opts.Verifier = c
		opts.Authenticator = c
	} else {
		log.Warn("auth mode dev: trusting X-Debug-User-ID", nil)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "version": version})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(ctx context.Context, cfgPath string) error {
	cfg, log, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return errors.New("migrate: database dsn is required (DB_DSN or database.dsn)")
	}

	db, err := pg.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := pg.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info("schema applied", nil)
	return nil
}
