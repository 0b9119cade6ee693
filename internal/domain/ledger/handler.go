package ledger

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupstore/topup-api/internal/middleware"
	"github.com/topupstore/topup-api/internal/pkg/errorhandler"
	"github.com/topupstore/topup-api/internal/pkg/response"
	"github.com/topupstore/topup-api/internal/pkg/validator"
)

// Handler serves the user-facing order and add-money endpoints
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req PlaceOrderRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), userID, req.Input())
	if err != nil {
		writeError(w, r, "place order", err)
		return
	}

	response.Created(w, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListUserOrders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list orders", err)
		return
	}
	response.OK(w, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "order not found")
		return
	}

	order, err := h.svc.GetUserOrder(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, r, "get order", err)
		return
	}
	response.OK(w, order)
}

func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListRecentOrders(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list recent orders", err)
		return
	}
	response.OK(w, orders)
}

func (h *Handler) CreateAddMoneyRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var body AddMoneyRequestBody
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&body); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	req, err := h.svc.CreateAddMoneyRequest(r.Context(), userID, body.Input())
	if err != nil {
		writeError(w, r, "create add money request", err)
		return
	}

	response.Created(w, req)
}

func (h *Handler) ListAddMoneyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListUserAddMoneyRequests(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list add money requests", err)
		return
	}
	response.OK(w, requests)
}

func (h *Handler) GetAddMoneyRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "add money request not found")
		return
	}

	req, err := h.svc.GetUserAddMoneyRequest(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, r, "get add money request", err)
		return
	}
	response.OK(w, req)
}

// OrderRoutes mounts under /api/orders. The recent feed is public.
func (h *Handler) OrderRoutes(authMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/recent", h.RecentOrders)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware...)
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})
	return r
}

// AddMoneyRoutes mounts under /api/add-money-requests
func (h *Handler) AddMoneyRoutes(authMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware...)
	r.Post("/", h.CreateAddMoneyRequest)
	r.Get("/", h.ListAddMoneyRequests)
	r.Get("/{id}", h.GetAddMoneyRequest)
	return r
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		response.InsufficientBalance(w, "Insufficient balance")
	case errors.Is(err, ErrInvalidStateTransition):
		response.InvalidStateTransition(w, "Only pending records can be decided")
	case errors.Is(err, ErrOrderNotFound):
		response.NotFound(w, "order not found")
	case errors.Is(err, ErrRequestNotFound):
		response.NotFound(w, "add money request not found")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "user not found")
	case errors.Is(err, ErrPackageNotFound), errors.Is(err, ErrPackageUnavailable):
		response.NotFound(w, "package not found")
	case errors.Is(err, ErrInvalidGameUID):
		errorhandler.Validation(r.Context(), w, map[string]string{"game_uid": "This field is required"})
	case errors.Is(err, ErrInvalidAmount):
		errorhandler.Validation(r.Context(), w, map[string]string{"amount": "Must be a positive amount with at most 2 decimal places"})
	case errors.Is(err, ErrAmountBelowMinimum):
		errorhandler.Validation(r.Context(), w, map[string]string{"amount": "Amount is below the minimum"})
	case errors.Is(err, ErrInvalidTransferProof):
		errorhandler.Validation(r.Context(), w, map[string]string{"transaction_id": "Sender number and transaction id are required"})
	case errors.Is(err, ErrInvalidDecision):
		errorhandler.Validation(r.Context(), w, map[string]string{"status": "Invalid status"})
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
