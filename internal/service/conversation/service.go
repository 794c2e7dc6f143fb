package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	"github.com/mwihoti/shauri/backend/internal/model/chat"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a submit is already in flight for this advisor")
	ErrUnavailable  = errors.New("advisory inference is not configured")
)

// Responder produces a single reply for an advisor given the prompt history.
// ai.Service satisfies it; tests substitute stubs.
type Responder interface {
	GenerateReply(ctx context.Context, adv advisor.Advisor, history []chat.Turn) (string, error)
}

// Observer receives transcript snapshots as a submit progresses: once when
// the user turn and pending placeholder land, once when the reply settles.
type Observer func(chat.Session)

// Service mediates between one advisor's UI and the session store: it owns
// the submit flow, lazy session creation and the single-in-flight rule that
// backs the disabled input control.
type Service struct {
	store     *chatservice.Store
	advisors  advisor.Store
	responder Responder
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService wires the conversation flow. responder may be nil when
// inference credentials are absent; Submit then fails with ErrUnavailable.
func NewService(store *chatservice.Store, advisors advisor.Store, responder Responder, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		advisors:  advisors,
		responder: responder,
		logger:    logger,
		inFlight:  make(map[string]bool),
	}
}

// EnsureSession returns the advisor's current session, creating one lazily
// when none is active — the on-mount rule for each advisor screen.
func (s *Service) EnsureSession(ctx context.Context, advisorID string) (chat.Session, error) {
	if session, ok := s.store.CurrentSession(ctx, advisorID); ok {
		return session, nil
	}
	return s.store.CreateSession(ctx, advisorID)
}

// NewChat starts a fresh session for the advisor. The previous session drops
// out of "current" but stays in history.
func (s *Service) NewChat(ctx context.Context, advisorID string) (chat.Session, error) {
	return s.store.CreateSession(ctx, advisorID)
}

// Busy reports whether a submit is in flight for the advisor, mirroring the
// disabled state of the input control.
func (s *Service) Busy(advisorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[advisorID]
}

// Submit runs the whole submit flow for one piece of user text: the user
// turn and a pending placeholder are appended first, then the responder is
// invoked with the prompt history (greeting and placeholder excluded), and
// the placeholder is replaced by the reply or, on any failure, the advisor's
// fixed apology. The in-flight flag always clears, so the advisor is
// submittable again whatever the outcome.
func (s *Service) Submit(ctx context.Context, advisorID, text string, observers ...Observer) (chat.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Session{}, ErrEmptyMessage
	}

	adv, ok := s.advisors.FindByID(advisorID)
	if !ok {
		return chat.Session{}, chatservice.ErrAdvisorNotFound
	}
	if s.responder == nil {
		return chat.Session{}, ErrUnavailable
	}

	s.mu.Lock()
	if s.inFlight[advisorID] {
		s.mu.Unlock()
		return chat.Session{}, ErrBusy
	}
	s.inFlight[advisorID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, advisorID)
		s.mu.Unlock()
	}()

	session, err := s.EnsureSession(ctx, advisorID)
	if err != nil {
		return chat.Session{}, err
	}

	messages := append(session.Messages, chat.UserTurn(text), chat.SystemTurn(chat.ThinkingPlaceholder))
	s.store.ReplaceMessages(ctx, advisorID, session.ID, messages)
	s.observe(ctx, advisorID, session.ID, observers)

	reply, err := s.responder.GenerateReply(ctx, adv, chat.PromptHistory(messages))
	if err != nil {
		s.logger.Warn("advisory inference failed",
			zap.String("advisor", advisorID),
			zap.String("session", session.ID),
			zap.Error(err))
		reply = adv.Apology
	}

	messages[len(messages)-1] = chat.SystemTurn(reply)
	s.store.ReplaceMessages(ctx, advisorID, session.ID, messages)
	s.observe(ctx, advisorID, session.ID, observers)

	settled, ok := s.store.Session(ctx, advisorID, session.ID)
	if !ok {
		// Session was deleted while the reply was pending; the update above
		// was a no-op and the outcome is discarded.
		return chat.Session{}, nil
	}
	return settled, nil
}

func (s *Service) observe(ctx context.Context, advisorID, sessionID string, observers []Observer) {
	if len(observers) == 0 {
		return
	}
	snapshot, ok := s.store.Session(ctx, advisorID, sessionID)
	if !ok {
		return
	}
	for _, observer := range observers {
		observer(snapshot.Clone())
	}
}
