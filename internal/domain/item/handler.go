package item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/unibazaar/unibazaar-api/internal/middleware"
	"github.com/unibazaar/unibazaar-api/internal/pkg/response"
)

// Handler handles item browse requests
type Handler struct {
	service *Service
}

// NewHandler creates item handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListApproved lists approved items for the caller's campus
// GET /items
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	campus := r.URL.Query().Get("campus")
	if campus == "" {
		campus = middleware.GetCampus(r.Context())
	}
	if campus == "" {
		response.BadRequest(w, "campus is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.service.ListApproved(r.Context(), campus, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, items)
}

// ListMine lists the current user's items in every status
// GET /items/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, items)
}

// Get returns a single item
// GET /items/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	it, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, "Item not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	// Non-approved items are only visible to their owner and admins.
	if it.Status != StatusApproved {
		userID := middleware.GetUserID(r.Context())
		if userID != it.OwnerID && middleware.GetRole(r.Context()) != "admin" {
			response.NotFound(w, "Item not found")
			return
		}
	}

	response.OK(w, it)
}
