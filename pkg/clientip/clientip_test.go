package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reqcheck/pkg/clientip"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{
			name:       "cloudflare first",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			want:       "203.0.113.7",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "bogus, 198.51.100.1, 10.0.0.2"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.1",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": " 198.51.100.9 "},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.9",
		},
		{
			name:       "invalid headers fall back",
			headers:    map[string]string{"CF-Connecting-IP": "x", "X-Forwarded-For": "y", "X-Real-IP": "z"},
			remoteAddr: "10.0.0.1:80",
			want:       "10.0.0.1",
		},
		{name: "mapped ipv4 is unmapped", headers: map[string]string{"X-Real-IP": "::ffff:192.0.2.5"}, want: "192.0.2.5"},
		{name: "zone is dropped", headers: map[string]string{"X-Real-IP": "fe80::1%eth0"}, want: "fe80::1"},
		{name: "nothing valid", remoteAddr: "garbage", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "198.51.100.1", got)
	assert.Empty(t, clientip.FromContext(context.Background()))
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(clientip.LogExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.1"), "hit")
	assert.Contains(t, buf.String(), `"client_ip":"192.0.2.1"`)

	buf.Reset()
	log.InfoContext(context.Background(), "miss")
	assert.NotContains(t, buf.String(), "client_ip")
}
