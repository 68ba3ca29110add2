package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passprove/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded header ignored without trusted proxy", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.0.2.10:443", "192.0.2.10"},
		{"real ip header ignored without trusted proxy", map[string]string{"X-Real-IP": "198.51.100.4"}, "192.0.2.10:443", "192.0.2.10"},
		{"remote addr without port", nil, "192.0.2.10:52100", "192.0.2.10"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:8080", "2001:db8::1"},
		{"nothing available", nil, "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(r))
		})
	}
}

func TestResolverBehindTrustedProxy(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "127.0.0.1"})
	require.NoError(t, err)
	res := NewResolver(trusted)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"rightmost untrusted hop", map[string]string{"X-Forwarded-For": "198.51.100.1, 203.0.113.7, 10.0.0.1"}, "10.0.0.2:443", "203.0.113.7"},
		{"all hops trusted falls back to leftmost", map[string]string{"X-Forwarded-For": "10.1.1.1, 10.0.0.1"}, "10.0.0.2:443", "10.1.1.1"},
		{"real ip from trusted peer", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "127.0.0.1:443", "198.51.100.4"},
		{"trusted peer without headers", nil, "10.0.0.2:443", "10.0.0.2"},
		{"untrusted peer cannot spoof", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.0.2.10:443", "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, res.ClientIP(r))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 192.168.0.0/16 ", "", "::1"})
	require.NoError(t, err)
	require.Len(t, prefixes, 2)
	assert.Equal(t, "192.168.0.0/16", prefixes[0].String())
	assert.Equal(t, "::1/128", prefixes[1].String())

	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestClientMetadataPopulatesContext(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	r := httptest.NewRequest(http.MethodPost, "/verification/initiate", nil)
	r.RemoteAddr = "203.0.113.9:50000"
	r.Header.Set("X-Forwarded-For", "198.51.100.77")
	r.Header.Set("User-Agent", "Mozilla/5.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "203.0.113.9", gotIP)
	assert.Equal(t, "Mozilla/5.0", gotUA)
}
