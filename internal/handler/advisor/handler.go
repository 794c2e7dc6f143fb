package advisor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	"github.com/mwihoti/shauri/backend/pkg/utils"
)

// Handler serves the advisor catalog.
type Handler struct {
	advisors advisor.Store
}

// New creates the advisor handler.
func New(advisors advisor.Store) *Handler {
	return &Handler{advisors: advisors}
}

// RegisterRoutes registers the advisor routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/advisors", h.handleListAdvisors)
}

func (h *Handler) handleListAdvisors(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.advisors.List())
}
