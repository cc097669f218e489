package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"maintenance-service/config"
)

// Cors applies one cross-origin policy to every route and answers every
// OPTIONS request itself with 204, preflight or not.
func Cors(policy config.CorsConfig) Middleware {
	anyOrigin := slices.Contains(policy.AllowedOrigins, "*")
	methods := strings.Join(policy.AllowedMethods, ", ")
	headers := strings.Join(policy.AllowedHeaders, ", ")
	exposed := strings.Join(policy.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(policy.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && (anyOrigin || slices.Contains(policy.AllowedOrigins, origin))
			if allowed {
				h := w.Header()
				if anyOrigin {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
			}

			if r.Method == http.MethodOptions {
				if allowed {
					h := w.Header()
					h.Set("Access-Control-Allow-Methods", methods)
					if headers != "" {
						h.Set("Access-Control-Allow-Headers", headers)
					}
					if policy.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", maxAge)
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
