// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/xovate/csvcheck/internal/logging"
)

// requestIDHeader is honored when supplied by a proxy and echoed back on
// every response so clients can quote it in support requests.
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, stores it in the context for
// log correlation, and sets it on the response. An incoming X-Request-ID
// header is reused so IDs stay stable across proxy hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)

		ctx := logging.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
