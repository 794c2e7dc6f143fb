package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/conversation"
	"github.com/mwihoti/shauri/backend/pkg/utils"
)

// Handler exposes the session store and the submit flow over REST.
type Handler struct {
	store    *chatservice.Store
	conv     *conversation.Service
	advisors advisor.Store
}

// New creates the chat handler.
func New(store *chatservice.Store, conv *conversation.Service, advisors advisor.Store) *Handler {
	return &Handler{
		store:    store,
		conv:     conv,
		advisors: advisors,
	}
}

// RegisterRoutes registers the session and message routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/current", h.handleCurrentSession)
	r.Post("/sessions/switch", h.handleSwitchSession)
	r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
	r.Post("/messages", h.handleSubmitMessage)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AdvisorID string `json:"advisorId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AdvisorID == "" {
		utils.RespondError(w, http.StatusBadRequest, "advisorId is required")
		return
	}

	session, err := h.conv.NewChat(r.Context(), payload.AdvisorID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	advisorID, ok := h.requireAdvisor(w, r)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.store.ListSessions(r.Context(), advisorID))
}

// handleCurrentSession returns the advisor's active session, creating one
// lazily when none exists — the first fetch an advisor screen makes.
func (h *Handler) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	advisorID, ok := h.requireAdvisor(w, r)
	if !ok {
		return
	}

	session, err := h.conv.EnsureSession(r.Context(), advisorID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleSwitchSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AdvisorID string `json:"advisorId"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AdvisorID == "" || payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "advisorId and sessionId are required")
		return
	}

	if _, ok := h.advisors.FindByID(payload.AdvisorID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "advisor not found")
		return
	}

	h.store.SwitchSession(r.Context(), payload.AdvisorID, payload.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	advisorID, ok := h.requireAdvisor(w, r)
	if !ok {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	h.store.DeleteSession(r.Context(), advisorID, sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmitMessage runs the whole submit flow and responds with the
// settled session, apology turn included on inference failure.
func (h *Handler) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AdvisorID string `json:"advisorId"`
		Content   string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.conv.Submit(r.Context(), payload.AdvisorID, payload.Content)
	if err != nil {
		utils.RespondError(w, submitStatus(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) requireAdvisor(w http.ResponseWriter, r *http.Request) (string, bool) {
	advisorID := r.URL.Query().Get("advisorId")
	if advisorID == "" {
		utils.RespondError(w, http.StatusBadRequest, "advisorId query parameter is required")
		return "", false
	}
	if _, ok := h.advisors.FindByID(advisorID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "advisor not found")
		return "", false
	}
	return advisorID, true
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, chatservice.ErrAdvisorNotFound):
		return http.StatusBadRequest
	case errors.Is(err, conversation.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, conversation.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
