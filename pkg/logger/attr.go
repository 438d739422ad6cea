package logger

import (
	"log/slog"

	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ClientIP records the client address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Rejection records a token rejection kind and flags security events.
func Rejection(r token.Rejection) slog.Attr {
	return slog.Group("token",
		slog.String("rejection", string(r)),
		slog.Bool("security_event", r.IsSecurityEvent()),
	)
}

// RejectionLevel maps a token rejection to the level it is logged at.
// Malformed input and expiry are routine; forgery and subject mismatch are not.
func RejectionLevel(r token.Rejection) slog.Level {
	switch r {
	case token.RejectionBadSignature, token.RejectionSubjectMismatch:
		return slog.LevelWarn
	case token.RejectionUnknown:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
