package v1handler

import (
	"net/http"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Services map[string]string `json:"services"`
}

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)

// Health pings the database and the cache and reports per-service status.
// Degraded dependencies yield 503 so load balancers stop routing here.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := r.Header.Get("Accept-Language")

	services := map[string]string{
		"database": statusOK,
		"cache":    statusOK,
	}
	healthy := true

	if err := h.deps.Database.Ping(ctx); err != nil {
		logger.Warn(ctx, "database ping failed", zap.Error(err))
		services["database"] = statusDegraded
		healthy = false
	}
	if err := h.deps.Cache.Ping(ctx); err != nil {
		logger.Warn(ctx, "cache ping failed", zap.Error(err))
		services["cache"] = statusDegraded
		healthy = false
	}

	resp := healthResponse{Status: statusOK, Message: h.deps.Catalog.T(lang, "health.ok"), Services: services}
	status := http.StatusOK
	if !healthy {
		resp.Status = statusDegraded
		resp.Message = h.deps.Catalog.T(lang, "health.degraded")
		status = http.StatusServiceUnavailable
	}

	respondJSON(ctx, w, status, resp)
}
