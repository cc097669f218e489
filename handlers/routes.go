package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"maintenance-service/config"
	"maintenance-service/middlewares"
	"maintenance-service/store"
)

// NewRouter registers every route on a fresh mux and wraps it in the
// middleware chain. reg may be nil when metrics are disabled.
func NewRouter(cfg config.AppConfig, s store.Store, logger *zap.SugaredLogger, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	SetupHealthRoutes(mux, s, logger)
	SetupRequestRoutes(mux, s, logger)
	SetupTenantRoutes(mux, s, logger)

	chain := []middlewares.Middleware{
		middlewares.Recovery(logger),
		middlewares.RequestID,
		middlewares.Logging(logger),
		middlewares.Cors(cfg.Cors),
		middlewares.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
		middlewares.Timeout(cfg.RequestTimeout),
	}
	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		// Innermost, so it sees the request the mux stamps with Pattern.
		chain = append(chain, middlewares.NewMetrics(reg).Middleware)
	}
	return middlewares.ChainMiddleware(chain...)(mux)
}
