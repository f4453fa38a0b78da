package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/driftbox/driftbox/config"
	httpx "github.com/driftbox/driftbox/internal/http"
)

const shutdownTimeout = 10 * time.Second

// ServeHTTP builds the router and runs the HTTP server until ctx is
// canceled, then shuts it down gracefully. It blocks.
func ServeHTTP(ctx context.Context, cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) error {
	router := httpx.NewRouter(httpx.RouterServices{
		Auth:            services.Auth,
		Users:           services.Users,
		Uploads:         services.Uploads,
		Site:            services.Site,
		CookieDomain:    cfg.HTTP.CookieDomain,
		InsecureCookies: cfg.IsDev,
		Logger:          logger,
	})

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
