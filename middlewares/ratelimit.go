package middlewares

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests above rps with 429. rps <= 0 disables it.
func RateLimit(rps float64, burst int, logger *zap.SugaredLogger) Middleware {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Limit(rps), burst)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warnw("rate limit exceeded",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
