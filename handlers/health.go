package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"maintenance-service/dto"
	"maintenance-service/helper"
	"maintenance-service/store"
)

const pingTimeout = 2 * time.Second

type HealthHandler struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func SetupHealthRoutes(mux *http.ServeMux, s store.Store, logger *zap.SugaredLogger) {
	handler := HealthHandler{store: s, logger: logger}
	mux.HandleFunc("GET /{$}", handler.root)
	mux.HandleFunc("GET /healthz", handler.healthz)
}

func (h *HealthHandler) root(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Api is healthy")
}

func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warnf("Store ping failed: %v", err)
		helper.WriteJson(w, http.StatusServiceUnavailable, dto.HealthDto{Status: "unavailable", Store: err.Error()})
		return
	}
	helper.WriteJson(w, http.StatusOK, dto.HealthDto{Status: "ok"})
}
