package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr fallback",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for single",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.4",
		},
		{
			name:       "x-forwarded-for chain takes first valid",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.4, 10.0.0.2"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.4",
		},
		{
			name:       "x-real-ip",
			headers:    map[string]string{"X-Real-IP": "192.0.2.9"},
			remoteAddr: "10.0.0.1:80",
			want:       "192.0.2.9",
		},
		{
			name:       "invalid everywhere",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "also-not-an-ip",
			want:       "",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientip.FromRequest(r))
		})
	}
}
