package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	advisorHandler "github.com/mwihoti/shauri/backend/internal/handler/advisor"
	chatHandler "github.com/mwihoti/shauri/backend/internal/handler/chat"
	"github.com/mwihoti/shauri/backend/internal/handler/events"
	"github.com/mwihoti/shauri/backend/internal/handler/stream"
	middlewarePkg "github.com/mwihoti/shauri/backend/internal/middleware"
	advisorModel "github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatService "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/conversation"
	"github.com/mwihoti/shauri/backend/internal/service/notify"
	"github.com/mwihoti/shauri/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(advisors advisorModel.Store, store *chatService.Store, conv *conversation.Service, hub *notify.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	advHandler := advisorHandler.New(advisors)
	sessionHandler := chatHandler.New(store, conv, advisors)
	streamHandler := stream.New(conv)
	eventsHandler := events.New(hub, advisors, logger)

	r.Route("/api", func(api chi.Router) {
		advHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		eventsHandler.RegisterRoutes(api)

		api.Get("/stream/{advisorID}", func(w http.ResponseWriter, r *http.Request) {
			advisorID := chi.URLParam(r, "advisorID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, advisorID, userMessage); err != nil {
				logger.Warn("stream request failed",
					zap.String("advisor", advisorID),
					zap.Error(err))
			}
		})
	})

	return r
}
