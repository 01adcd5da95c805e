package middleware

import (
	"context"
	"log/slog"
)

// contextKey is a private key type to avoid collisions in context values.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	identityKey = contextKey("identityID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from the context,
// falling back to the default logger when none was injected.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetIdentityFromCtx retrieves the authenticated end-user identity from the
// context. The boolean is false when the auth middleware did not run.
func GetIdentityFromCtx(ctx context.Context) (int64, bool) {
	identity, ok := ctx.Value(identityKey).(int64)
	return identity, ok
}
