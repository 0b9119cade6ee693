package ledger

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupstore/topup-api/internal/middleware"
	"github.com/topupstore/topup-api/internal/pkg/errorhandler"
	"github.com/topupstore/topup-api/internal/pkg/response"
	"github.com/topupstore/topup-api/internal/pkg/validator"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// AdminHandler serves the review queue and dashboard. Callers are checked for the admin role by its routes.
type AdminHandler struct {
	svc *Service
}

func NewAdminHandler(svc *Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	orders, total, err := h.svc.ListAllOrders(r.Context(), Page{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		errorhandler.Internal(r.Context(), w, "admin list orders", err)
		return
	}
	response.WithMeta(w, orders, response.NewMeta(total, page, limit))
}

func (h *AdminHandler) DecideOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "order not found")
		return
	}

	var body DecideOrderBody
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&body); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	order, err := h.svc.DecideOrder(r.Context(), id, OrderStatus(body.Status))
	if err != nil {
		writeError(w, r, "decide order", err)
		return
	}
	response.OK(w, order)
}

func (h *AdminHandler) ListAddMoneyRequests(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	requests, total, err := h.svc.ListAllAddMoneyRequests(r.Context(), Page{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		errorhandler.Internal(r.Context(), w, "admin list add money requests", err)
		return
	}
	response.WithMeta(w, requests, response.NewMeta(total, page, limit))
}

func (h *AdminHandler) DecideAddMoneyRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "add money request not found")
		return
	}

	var body DecideRequestBody
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&body); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	req, err := h.svc.DecideAddMoneyRequest(r.Context(), id, RequestStatus(body.Status))
	if err != nil {
		writeError(w, r, "decide add money request", err)
		return
	}
	response.OK(w, req)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "admin stats", err)
		return
	}
	response.OK(w, stats)
}

// Routes mounts under /api/admin
func (h *AdminHandler) Routes(authMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware...)
	r.Use(middleware.RequireAdmin())

	r.Get("/orders", h.ListOrders)
	r.Patch("/orders/{id}", h.DecideOrder)
	r.Get("/add-money-requests", h.ListAddMoneyRequests)
	r.Patch("/add-money-requests/{id}", h.DecideAddMoneyRequest)
	r.Get("/stats", h.Stats)
	return r
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
