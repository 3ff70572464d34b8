package utils

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"meeting-service/internal/models"
)

type ContextKey int

const (
	ContextKeyIdentity ContextKey = iota
	ContextKeyLogger
)

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(models.Identity)
	return identity, ok
}

func StoreIdentityInContext(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}
