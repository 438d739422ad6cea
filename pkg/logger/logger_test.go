package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("hello")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("context extractor", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("request_id", v), ok
			}),
		)

		log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-1"), "hello")
		assert.Equal(t, "req-1", decode(t, buf)["request_id"])

		buf.Reset()
		log.With("k", "v").WithGroup("g").InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-2"), "again")
		assert.Contains(t, buf.String(), "req-2")
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		wantEnv  string
		wantJSON bool
		debug    bool
	}{
		{env: "production", wantEnv: "production", wantJSON: true},
		{env: "prod", wantEnv: "production", wantJSON: true},
		{env: "staging", wantEnv: "staging", wantJSON: true},
		{env: "development", wantEnv: "development", debug: true},
		{env: "", wantEnv: "development", debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "api"), logger.WithOutput(buf))

			assert.Equal(t, tt.debug, log.Enabled(context.Background(), slog.LevelDebug))

			log.Info("hello")
			if tt.wantJSON {
				entry := decode(t, buf)
				assert.Equal(t, tt.wantEnv, entry["env"])
				assert.Equal(t, "api", entry["service"])
				return
			}
			assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			assert.Contains(t, buf.String(), "service=api")
		})
	}
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "user_id", logger.UserID("u-1").Key)
	assert.True(t, logger.UserID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "request_id", logger.RequestID("r").Key)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "emailchange", logger.Component("emailchange").Value.String())
	assert.Equal(t, "confirmed", logger.Event("confirmed").Value.String())
}

func TestRejection(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	log.Warn("rejected", logger.Rejection(token.RejectionBadSignature))

	entry := decode(t, buf)
	group, ok := entry["token"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bad_signature", group["rejection"])
	assert.Equal(t, true, group["security_event"])

	assert.Equal(t, slog.LevelInfo, logger.RejectionLevel(token.RejectionMalformed))
	assert.Equal(t, slog.LevelInfo, logger.RejectionLevel(token.RejectionExpired))
	assert.Equal(t, slog.LevelWarn, logger.RejectionLevel(token.RejectionBadSignature))
	assert.Equal(t, slog.LevelWarn, logger.RejectionLevel(token.RejectionSubjectMismatch))
	assert.Equal(t, slog.LevelError, logger.RejectionLevel(token.RejectionUnknown))
}
