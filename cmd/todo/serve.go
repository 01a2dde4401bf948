package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduroese/To-Do-App/db"
	"github.com/eduroese/To-Do-App/internal/auth"
	"github.com/eduroese/To-Do-App/internal/handlers"
	"github.com/eduroese/To-Do-App/internal/live"
	"github.com/eduroese/To-Do-App/internal/router"
	"github.com/eduroese/To-Do-App/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	dial, err := db.NewDialer(cfg.Store)
	if err != nil {
		logger.Error("failed to configure store", "err", err)
		return err
	}

	handle := db.Open(dial, logger)
	defer func() {
		if err := handle.Close(context.Background()); err != nil {
			logger.Warn("failed to close store", "err", err)
		}
	}()

	// Connect eagerly so a bad address shows up at startup; requests retry on their own.
	if _, err := handle.Store(ctx); err != nil {
		logger.Warn("store not reachable yet", "driver", cfg.Store.Driver, "err", err)
	}

	h := handlers.New(handlers.Config{
		Service:        services.New(handle, auth.NewHasher(cfg.BcryptCost)),
		Stores:         handle,
		Hub:            live.NewHub(logger),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(h, cfg.AllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "store", cfg.Store.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return err
	}

	return nil
}
