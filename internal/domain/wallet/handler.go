package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/unibazaar/unibazaar-api/internal/middleware"
	"github.com/unibazaar/unibazaar-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

type rechargeRequest struct {
	Amount      int64  `json:"amount"`
	ReferenceID string `json:"reference_id"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Recharge adds funds to the current user's wallet
// POST /wallet/recharge
func (h *Handler) Recharge(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req rechargeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	err := h.svc.Recharge(r.Context(), userID, req.Amount, "wallet recharge", req.ReferenceID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "amount must be greater than zero")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "user not found")
		case errors.Is(err, ErrReferenceConflict):
			response.Conflict(w, "REFERENCE_CONFLICT", "reference_id already used with a different amount")
		default:
			response.InternalError(w)
		}
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"balance": balance})
}

// Balance returns the current user's balance
// GET /wallet/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"balance": balance})
}

// Transactions returns the current user's ledger entries
// GET /wallet/transactions
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	transactions, err := h.svc.ListTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, transactions)
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/recharge", h.Recharge)
	r.Get("/balance", h.Balance)
	r.Get("/transactions", h.Transactions)
	return r
}
