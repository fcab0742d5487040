package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unibazaar/unibazaar-api/internal/pkg/response"
)

// Handler handles admin user management requests
type Handler struct {
	repo Repository
}

// NewHandler creates user handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Ban bans a user. Banned users fail authentication on their next request;
// already-issued access tokens age out within the access TTL.
// POST /admin/users/{id}/ban
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, true)
}

// Unban lifts a ban
// POST /admin/users/{id}/unban
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, false)
}

func (h *Handler) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.repo.SetBanned(r.Context(), id, banned); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
		} else {
			log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to update ban status")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"user_id": id, "is_banned": banned})
}

// AdminRoutes returns admin-only user management routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Post("/{id}/ban", h.Ban)
	r.Post("/{id}/unban", h.Unban)

	return r
}
