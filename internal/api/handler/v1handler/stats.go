package v1handler

import (
	"net/http"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
)

type statsResponse struct {
	Label  string    `json:"label"`
	Users  int64     `json:"users"`
	At     time.Time `json:"at"`
	Cached bool      `json:"cached"`
}

// Stats serves the user count, preferring the cached snapshot the worker
// maintains and falling back to a live count when the cache is cold.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := r.Header.Get("Accept-Language")

	var snapshot worker.UserCountSnapshot
	found, err := h.deps.Cache.GetJSON(ctx, worker.UserCountCacheKey, &snapshot)
	if err != nil {
		// cache trouble is not fatal for stats, fall through to the database
		logger.Warn(ctx, "could not read stats cache", zap.Error(err))
		found = false
	}

	if found {
		respondJSON(ctx, w, http.StatusOK, statsResponse{
			Label:  h.deps.Catalog.T(lang, "stats.users"),
			Users:  snapshot.Count,
			At:     snapshot.At,
			Cached: true,
		})

		return
	}

	count, err := h.deps.Users.CountUsers(ctx)
	if err != nil {
		h.respondError(w, r, err)

		return
	}

	respondJSON(ctx, w, http.StatusOK, statsResponse{
		Label: h.deps.Catalog.T(lang, "stats.users"),
		Users: count,
		At:    time.Now().UTC(),
	})
}
