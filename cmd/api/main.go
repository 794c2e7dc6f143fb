package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mwihoti/shauri/backend/internal/config"
	"github.com/mwihoti/shauri/backend/internal/handler"
	"github.com/mwihoti/shauri/backend/internal/logging"
	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	"github.com/mwihoti/shauri/backend/internal/service/ai"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/conversation"
	"github.com/mwihoti/shauri/backend/internal/service/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file before anything reads the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	advisorStore := advisor.NewMemoryStore(advisor.Seed())
	hub := notify.NewHub()
	sessionStore := chatservice.NewStore(advisorStore, hub)

	var responder conversation.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI, logger)
		if err != nil {
			logger.Warn("failed to initialize AI service, submits will be rejected", zap.Error(err))
		} else {
			logger.Info("AI service initialized")
			responder = aiService
		}
	} else {
		logger.Warn("ark credentials not configured, submits will be rejected")
	}

	conv := conversation.NewService(sessionStore, advisorStore, responder, logger)
	router := handler.NewRouter(advisorStore, sessionStore, conv, hub, logger)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("advisory backend listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
