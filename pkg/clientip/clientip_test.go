package clientip_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendus-stephan/coreflowhr/pkg/clientip"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "172.16.0.1:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.195")

	assert.Equal(t, "172.16.0.1", clientip.GetIP(r))
}

func TestGetForwardedIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "cloudflare header wins",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "first valid forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "real ip header",
			headers:    map[string]string{"X-Real-IP": "192.168.1.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "invalid headers fall back to peer",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "999.1.1.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "ipv6 peer",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "peer without port",
			remoteAddr: "10.0.0.2",
			expected:   "10.0.0.2",
		},
		{
			name:       "unparseable peer",
			remoteAddr: "nonsense",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetForwardedIP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	capture := func(mw func(http.Handler) http.Handler) string {
		var got string
		h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = clientip.FromContext(r.Context())
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Real-IP", "192.168.1.1")
		r.Header.Set("X-Client", "198.51.100.7")
		h.ServeHTTP(httptest.NewRecorder(), r)
		return got
	}

	t.Run("peer address by default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "10.0.0.1", capture(clientip.New()))
	})

	t.Run("forwarded headers when trusted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "192.168.1.1", capture(clientip.New(clientip.WithTrustProxy())))
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "198.51.100.7", capture(clientip.New(clientip.WithTrustProxy("X-Client"))))
	})
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(clientip.LogExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "203.0.113.9"), "hello")
	log.InfoContext(context.Background(), "bare")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "203.0.113.9", first["client_ip"])
	assert.NotContains(t, second, "client_ip")

}
