package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:1234", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.3"}, "1.1.1.1:1234", "10.0.0.3"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "10.0.0.4"}, "1.1.1.1:1234", "10.0.0.4"},
		{"remote addr", nil, "1.1.1.1:1234", "1.1.1.1"},
		{"ipv6 remote addr", nil, "[::1]:80", "::1"},
		{"remote without port", nil, "pipe", "pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			var got string
			ClientIdentifier(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetClientIP(r.Context())
			})).ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetClientIP_Missing(t *testing.T) {
	assert.Equal(t, "unknown", GetClientIP(context.Background()))
}
