package client

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// chimiddlewareRequestID runs fn with a context carrying chi's request id.
func chimiddlewareRequestID(fn func(ctx context.Context)) http.Handler {
	return chimiddleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fn(r.Context())
	}))
}
