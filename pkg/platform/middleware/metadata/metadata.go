package metadata

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"passprove/pkg/requestcontext"
)

// unknownClient is recorded when no address information is available.
const unknownClient = "unknown"

// Resolver determines the client address of a request. Proxy headers are
// honored only when the connecting peer is inside a trusted prefix.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver builds a Resolver trusting the given proxy prefixes. With no
// prefixes, only the connection's remote address is used.
func NewResolver(trusted []netip.Prefix) *Resolver {
	return &Resolver{trusted: trusted}
}

// ParseTrustedProxies parses CIDRs or bare addresses, e.g. "10.0.0.0/8" or "127.0.0.1".
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Middleware extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and services.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), res.ClientIP(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP returns the remote address unless the peer is a trusted proxy, in
// which case X-Forwarded-For is walked from the right past trusted hops and
// X-Real-IP is the fallback.
func (res *Resolver) ClientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if peer == "" {
		return unknownClient
	}
	if !res.isTrusted(peer) {
		return peer
	}

	// X-Forwarded-For: client, proxy1, proxy2
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if i == 0 || !res.isTrusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func (res *Resolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// ClientMetadata is the middleware for deployments without a proxy in front:
// forwarding headers are ignored.
func ClientMetadata(next http.Handler) http.Handler {
	return NewResolver(nil).Middleware(next)
}

// ClientIPFromRequest resolves the client IP without trusting any proxy.
func ClientIPFromRequest(r *http.Request) string {
	return NewResolver(nil).ClientIP(r)
}
