package v1handler

import (
	"net/http"
	"time"
)

type adminUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

type adminUsersResponse struct {
	Users []adminUser `json:"users"`
}

// AdminUsers lists the active superuser accounts. Auth is enforced by the
// bearer middleware wrapping this route.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.deps.Users.Superusers(ctx)
	if err != nil {
		h.respondError(w, r, err)

		return
	}

	resp := adminUsersResponse{Users: make([]adminUser, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, adminUser{
			ID:         u.ID.String(),
			Username:   u.Username,
			Email:      u.Email,
			IsActive:   u.IsActive,
			DateJoined: u.DateJoined,
		})
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}
