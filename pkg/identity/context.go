package identity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tendus-stephan/coreflowhr/pkg/logger"
)

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the caller set by Middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// MustFromContext returns the caller or ErrNoIdentity.
func MustFromContext(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// LogExtractor adds user_id to records logged with an authenticated context.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.UserID(id.UserID.String()), true
	}
}

// UserKey returns the caller's id for per-user rate limiting, or "" for
// anonymous requests.
func UserKey(r *http.Request) string {
	id, ok := FromContext(r.Context())
	if !ok {
		return ""
	}
	return id.UserID.String()
}
