package approval

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/unibazaar/unibazaar-api/internal/domain/item"
	"github.com/unibazaar/unibazaar-api/internal/middleware"
	"github.com/unibazaar/unibazaar-api/internal/pkg/response"
	"github.com/unibazaar/unibazaar-api/internal/pkg/validator"
)

// Handler handles submission and moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates approval handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit submits a new item for moderation, charging the advertising fee
// POST /items
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}
	campus := middleware.GetCampus(r.Context())

	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// Payload is validated before any wallet mutation happens.
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	it, err := h.service.Submit(r.Context(), userID, campus, &req)
	if err != nil {
		var insufficient *InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			response.ConflictWithDetails(w, "INSUFFICIENT_BALANCE", "Not enough funds to pay the advertising fee", map[string]string{
				"balance":  strconv.FormatInt(insufficient.Balance, 10),
				"required": strconv.FormatInt(insufficient.Required, 10),
			})
		case errors.Is(err, item.ErrInvalidKind), errors.Is(err, ErrInvalidFee):
			response.BadRequest(w, "Invalid item kind")
		default:
			response.InternalError(w)
		}
		return
	}

	balance, _ := h.service.wallets.GetBalance(r.Context(), userID)
	response.Created(w, SubmitResponse{Item: it, Balance: balance})
}

// Fees returns the current fee schedule
// GET /items/fees
func (h *Handler) Fees(w http.ResponseWriter, r *http.Request) {
	fees := make(map[string]int64, len(h.service.fees))
	for kind, fee := range h.service.fees {
		fees[string(kind)] = fee
	}
	response.OK(w, fees)
}

// ListPending lists items awaiting a decision (admin only)
// GET /admin/items/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}

	items, total, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.Meta{Total: total, Limit: limit, Offset: offset})
}

// Approve approves a pending item (admin only)
// POST /admin/items/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Approve)
}

// Reject rejects a pending item and refunds its fee (admin only)
// POST /admin/items/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, itemID uuid.UUID) (*item.Item, error)) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	it, err := fn(r.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, item.ErrItemNotFound):
			response.NotFound(w, "Item not found")
		case errors.Is(err, item.ErrAlreadyProcessed):
			// Benign outcome: the decision was already made, possibly by a
			// concurrent moderator. Nothing changed on this call.
			response.Conflict(w, "ALREADY_PROCESSED", "Item was already processed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, it)
}

// Routes returns the /items router: submission plus browse endpoints.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, browse *item.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Submit)
	r.Get("/", browse.ListApproved)
	r.Get("/fees", h.Fees)
	r.Get("/mine", browse.ListMine)
	r.Get("/{id}", browse.Get)

	return r
}

// AdminRoutes returns admin-only moderation routes. Role enforcement happens
// in the middleware, before the workflow is ever invoked.
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/pending", h.ListPending)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)

	return r
}
