// Package v1handler implements the v1 operational API: health, stats and the
// superuser listing.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"go.uber.org/zap"
)

// Users is the slice of user storage the handlers need.
type Users interface {
	Superusers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// Cache is the slice of the cache the handlers need.
type Cache interface {
	Ping(ctx context.Context) error
	GetJSON(ctx context.Context, key string, result any) (bool, error)
}

// Pinger checks a dependency's liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds the handler dependencies.
type Deps struct {
	Users    Users
	Cache    Cache
	Database Pinger
	Catalog  *i18n.Catalog
}

// Handler serves the v1 routes.
type Handler struct {
	deps Deps
}

// New constructs a Handler.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes on mux. auth wraps the admin routes.
func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /v1/health", h.Health)
	mux.HandleFunc("GET /v1/stats", h.Stats)
	mux.Handle("GET /v1/admin/users", auth(http.HandlerFunc(h.AdminUsers)))
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(ctx, "error writing response", zap.Error(err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps semantic error kinds to HTTP statuses and localizes the
// message for the caller.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	lang := r.Header.Get("Accept-Language")

	status := http.StatusInternalServerError
	key := "errors.internal"

	switch {
	case errors.Is(err, serrors.ErrUnauthorized):
		status, key = http.StatusUnauthorized, "errors.unauthorized"
	case errors.Is(err, serrors.ErrForbidden):
		status, key = http.StatusForbidden, "errors.forbidden"
	case errors.Is(err, serrors.ErrNotFound):
		status, key = http.StatusNotFound, "errors.not_found"
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
		key = "errors.internal" // no dedicated message, details are logged only
	}

	logger.Error(ctx, "request failed", zap.Int("status", status), zap.Error(err))
	respondJSON(ctx, w, status, errorBody{Error: h.deps.Catalog.T(lang, key)})
}
