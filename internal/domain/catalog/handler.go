package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/topupstore/topup-api/internal/pkg/errorhandler"
	"github.com/topupstore/topup-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.ListGames(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list games", err)
		return
	}
	response.OK(w, games)
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameId"))
	if err != nil {
		response.NotFound(w, "game not found")
		return
	}

	packages, err := h.svc.ListPackages(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			response.NotFound(w, "game not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "list packages", err)
		return
	}
	response.OK(w, packages)
}

// Routes mounts under /api/games; the catalog is public
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGames)
	r.Get("/{gameId}/packages", h.ListPackages)
	return r
}
