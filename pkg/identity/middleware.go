package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tendus-stephan/coreflowhr/pkg/httpjson"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, error) {
	scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", ErrMissingToken
	}
	return tok, nil
}

// Middleware rejects requests without a valid access token with 401 and
// stores the Identity in the request context otherwise.
func Middleware(v *Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("identity"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r)
			if err == nil {
				var id Identity
				if id, err = v.Authenticate(raw); err == nil {
					next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
					return
				}
			}

			attrs := []any{logger.Event("auth.rejected"), logger.Error(err)}
			if kind := token.Kind(err); kind != token.RejectionUnknown {
				attrs = append(attrs, logger.Rejection(kind))
			}
			log.Log(r.Context(), rejectionLevel(err), "access token rejected", attrs...)

			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			httpjson.Error(w, httpjson.ErrUnauthorized.WithMessage("Authentication required."))
		})
	}
}

// A correctly signed token with the wrong audience or subject was minted for
// something else and is worth a warning.
func rejectionLevel(err error) slog.Level {
	switch {
	case errors.Is(err, ErrMissingToken):
		return slog.LevelInfo
	case errors.Is(err, ErrInvalidAudience), errors.Is(err, ErrInvalidSubject):
		return slog.LevelWarn
	default:
		return logger.RejectionLevel(token.Kind(err))
	}
}
