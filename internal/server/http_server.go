package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meeting-service/internal/config"
	"meeting-service/internal/utils"
)

const shutdownTimeout = 15 * time.Second

func corsConfig(cfg config.Config) cors.Config {
	origins := slices.Clone(cfg.CORSAllowedOrigins)
	if cfg.Env == "development" {
		origins = append(origins, "http://localhost:3000", "http://localhost:5173")
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Google-Token"},
		MaxAge:       12 * time.Hour,
	}
}

// NewRouter returns a gin engine carrying the common middlewares.
func NewRouter(cfg config.Config, logger *slog.Logger) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 || cfg.Env == "development" {
		r.Use(cors.New(corsConfig(cfg)))
	}
	r.Use(NewLogging(logger, WithIgnorePath([]string{"/health", "/metrics"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(timeoutMiddleware(cfg.RequestTimeout()))
	return r
}

func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func NewServer(handler http.Handler, port string, requestTimeout time.Duration) *http.Server {
	// leave room for handlers to answer after their own context deadline
	timeout := requestTimeout + 5*time.Second
	return &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       timeout,
	}
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errs := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	return nil
}
