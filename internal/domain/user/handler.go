package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/topupstore/topup-api/internal/middleware"
	"github.com/topupstore/topup-api/internal/pkg/errorhandler"
	"github.com/topupstore/topup-api/internal/pkg/response"
	"github.com/topupstore/topup-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LoadAccount resolves the authenticated caller to a stored account and puts its role in the context.
// It must run after middleware.Auth.
func (h *Handler) LoadAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}

		u, err := h.svc.Load(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				response.Conflict(w, "email already belongs to another account")
				return
			}
			errorhandler.Internal(r.Context(), w, "load account", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(middleware.WithRole(r.Context(), string(u.Role))))
	})
}

// Me refreshes the account from the token and returns it
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	u, err := h.svc.Sync(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(w, "email already belongs to another account")
			return
		}
		errorhandler.Internal(r.Context(), w, "get current user", err)
		return
	}

	response.OK(w, u)
}

// Balance returns only the wallet balance of the caller
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.Balance(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get balance", err)
		return
	}

	response.OK(w, map[string]decimal.Decimal{"balance": balance})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "update profile", err)
		return
	}

	response.OK(w, u)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "delete account", err)
		return
	}

	response.OK(w, map[string]string{"message": "Account deleted successfully"})
}

// Routes mounts under /api/auth
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/user", h.Me)
	r.Get("/balance", h.Balance)
	r.Patch("/profile", h.UpdateProfile)
	r.Delete("/profile", h.DeleteAccount)
	return r
}
