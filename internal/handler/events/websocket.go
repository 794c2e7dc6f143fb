package events

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/notify"
)

const writeTimeout = 10 * time.Second

// Handler pushes session-change events to connected browsers so the history
// panel can re-fetch after any mutation.
type Handler struct {
	hub      *notify.Hub
	advisors advisor.Store
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates the events handler.
func New(hub *notify.Hub, advisors advisor.Store, logger *zap.Logger) *Handler {
	return &Handler{
		hub:      hub,
		advisors: advisors,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{advisorID}", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	advisorID := chi.URLParam(r, "advisorID")
	if _, ok := h.advisors.FindByID(advisorID); !ok {
		http.Error(w, "advisor not found", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events := h.hub.Subscribe(advisorID)
	defer h.hub.Unsubscribe(advisorID, events)

	h.logger.Debug("events client connected", zap.String("advisor", advisorID))

	// Drain client frames so close/ping handling works; inbound payloads
	// are ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := h.writeEvent(conn, event); err != nil {
				h.logger.Debug("events client dropped", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) writeEvent(conn *websocket.Conn, event chatservice.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}
