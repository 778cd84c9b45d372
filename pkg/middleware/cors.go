package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/collection"
)

// CORSOptions configures cross-origin access for storefront clients.
type CORSOptions struct {
	AllowedOrigins []string // exact origins, or ["*"]
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache, seconds
}

// DefaultCORSOptions allows any origin to call the catalog API. The
// storefront and admin panel are served from separate hosts and the
// API carries no credentials, so the wildcard is acceptable here.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}
}

// CORS adds the Access-Control headers and short-circuits preflight
// OPTIONS requests with 204.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowed, ok := collection.First(opts.AllowedOrigins, func(o string) bool {
				return o == "*" || o == origin
			}); ok {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if opts.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
