package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the audit over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg.Server.Port = resolvePort(servePort, cfg.Server.Port)
		env, err := initAudit(cfg, "serve")
		if err != nil {
			return err
		}

		// The API answers 503 until a load succeeds, so a failed first load
		// is not fatal.
		if _, err := env.Store.Refresh(ctx); err != nil {
			zap.L().Warn("initial load failed, serving without data", zap.Error(err))
		}

		interval := time.Duration(cfg.Server.RefreshIntervalSecs) * time.Second
		go env.Store.Watch(ctx, interval)

		router := buildRouter(env.Store, cfg.Server.AllowedOrigins)
		return startServer(ctx, router, cfg.Server.Port)
	},
}

// resolvePort prefers the --port flag over the configured port.
func resolvePort(flagPort, configPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return configPort
}

// startServer listens until ctx is cancelled, then shuts down gracefully.
func startServer(ctx context.Context, handler http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
