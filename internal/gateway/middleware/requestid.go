package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// ContextKeyRequestID carries the request id through the request context.
const ContextKeyRequestID contextKey = "request_id"

// HeaderRequestID is the response header exposing the request id.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware assigns each request a unique id, reusing a
// caller-supplied one so upstream proxies can correlate logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
