// Package reqid generates per-request IDs and carries them through the
// request context.
//
// Every catalog request gets an ID, echoed back in the X-Request-ID
// header and attached to every structured log line written under that
// request via logger.WithCtx(ctx).
//
// Wire the middleware before anything that logs (internal/server):
//
//	r.Use(reqid.Middleware())
//
// Reading inside a handler or service:
//
//	id := reqid.FromCtx(r.Context())
//
// Logging with the ID automatically attached:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "product_id", product.ID.Hex())
//	// → time=... level=INFO msg="product created" request_id=ab12cd... product_id=66f...
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

type ctxKey struct{}

// Header is the HTTP header the request ID travels in, both directions.
const Header = "X-Request-ID"

// New returns a random 16-byte hex request ID.
func New() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware assigns each request an ID and exposes it to handlers and
// logs. An incoming X-Request-ID from a gateway or storefront proxy is
// honoured so traces stay correlated across hops; otherwise a fresh ID
// is generated. The ID is always echoed in the response header.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}

			w.Header().Set(Header, id)

			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
