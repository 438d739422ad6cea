package requestid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, incoming string) (ctxID, headerID string) {
	t.Helper()

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	return ctxID, rec.Header().Get(requestid.Header)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		ctxID, headerID := serve(t, requestid.New(), "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, headerID)

		parsed, err := uuid.Parse(ctxID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	})

	t.Run("ignores incoming by default", func(t *testing.T) {
		t.Parallel()

		ctxID, _ := serve(t, requestid.New(), "client-id")
		assert.NotEqual(t, "client-id", ctxID)
	})

	t.Run("trusted incoming", func(t *testing.T) {
		t.Parallel()

		ctxID, headerID := serve(t, requestid.New(requestid.WithTrustIncoming(true)), "edge-123_abc")
		assert.Equal(t, "edge-123_abc", ctxID)
		assert.Equal(t, "edge-123_abc", headerID)
	})

	t.Run("trusted but invalid incoming is replaced", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"bad id", "<script>", strings.Repeat("a", 129)} {
			ctxID, _ := serve(t, requestid.New(requestid.WithTrustIncoming(true)), in)
			assert.NotEqual(t, in, ctxID)
			assert.NotEmpty(t, ctxID)
		}
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()

		ctxID, _ := serve(t, requestid.New(requestid.WithGenerator(func() string { return "fixed" })), "")
		assert.Equal(t, "fixed", ctxID)
	})

	t.Run("middleware trusts incoming", func(t *testing.T) {
		t.Parallel()

		ctxID, _ := serve(t, requestid.Middleware, "proxy-id")
		assert.Equal(t, "proxy-id", ctxID)
	})

	t.Run("nil generator panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { requestid.WithGenerator(nil) })
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LogExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "with id")
	log.InfoContext(context.Background(), "without id")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "req-1", first["request_id"])
	assert.NotContains(t, second, "request_id")
}
