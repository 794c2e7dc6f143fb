package stream

import (
	"context"
	"net/http"

	"github.com/mwihoti/shauri/backend/internal/model/chat"
	"github.com/mwihoti/shauri/backend/internal/service/conversation"
	"github.com/mwihoti/shauri/backend/pkg/utils"
)

// Handler runs the submit flow over Server-Sent Events so the browser can
// render the pending placeholder before the reply settles.
type Handler struct {
	conv *conversation.Service
}

// New creates the stream handler.
func New(conv *conversation.Service) *Handler {
	return &Handler{conv: conv}
}

// StreamResponse is one SSE frame.
type StreamResponse struct {
	Event     string        `json:"event"`
	SessionID string        `json:"sessionId,omitempty"`
	Session   *chat.Session `json:"session,omitempty"`
	Error     string        `json:"error,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
}

// HandleStreamRequest submits one user message and emits a frame for each
// transcript state: "pending" when the user turn and placeholder land, then
// "reply" when generation settles (the apology turn counts as settled). The
// stream closes after the final frame.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, advisorID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return nil
	}

	utils.SetupSSEHeaders(w)

	first := true
	observer := func(snapshot chat.Session) {
		event := "reply"
		if first {
			event = "pending"
			first = false
		}
		snap := snapshot
		utils.SendSSEChunk(w, flusher, StreamResponse{
			Event:     event,
			SessionID: snap.ID,
			Session:   &snap,
		})
	}

	session, err := h.conv.Submit(ctx, advisorID, userMessage, observer)
	if err != nil {
		utils.SendSSEChunk(w, flusher, StreamResponse{
			Event:    "error",
			Error:    err.Error(),
			Finished: true,
		})
		return err
	}

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:     "done",
		SessionID: session.ID,
		Finished:  true,
	})
	return nil
}
