package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"passprove/pkg/requestcontext"
)

// Header carries the correlation id in and out.
const Header = "X-Request-ID"

const maxInboundLength = 128

// Middleware reuses a sane inbound X-Request-ID or generates one, stores it in
// the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
