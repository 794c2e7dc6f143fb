package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	"github.com/mwihoti/shauri/backend/internal/model/chat"
)

var ErrAdvisorNotFound = errors.New("advisor not found")

// EventType classifies a session-collection mutation.
type EventType string

const (
	EventCreated  EventType = "session.created"
	EventUpdated  EventType = "session.updated"
	EventSwitched EventType = "session.switched"
	EventDeleted  EventType = "session.deleted"
)

// Event describes one store mutation for push transports.
type Event struct {
	Type      EventType `json:"type"`
	AdvisorID string    `json:"advisorId"`
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives an event after every successful mutation.
type Notifier interface {
	Publish(Event)
}

// Store holds every advisor's session collection for the process lifetime.
// Each advisor owns an ordered session slice and a current-session pointer;
// advisors never share sessions. All reads return deep copies and all writes
// replace whole values, so callers must re-fetch after any mutation.
type Store struct {
	mu       sync.RWMutex
	advisors advisor.Store
	sessions map[string][]*chat.Session
	current  map[string]string
	notifier Notifier
}

// NewStore bootstraps an empty in-memory session store.
func NewStore(advisors advisor.Store, notifier Notifier) *Store {
	return &Store{
		advisors: advisors,
		sessions: make(map[string][]*chat.Session),
		current:  make(map[string]string),
		notifier: notifier,
	}
}

// CreateSession provisions a session seeded with the advisor's greeting,
// appends it to the advisor's collection and makes it current.
func (s *Store) CreateSession(_ context.Context, advisorID string) (chat.Session, error) {
	adv, ok := s.advisors.FindByID(advisorID)
	if !ok {
		return chat.Session{}, ErrAdvisorNotFound
	}

	now := time.Now().UTC()
	session := &chat.Session{
		ID:        uuid.NewString(),
		AdvisorID: adv.ID,
		Title:     chat.DefaultTitle,
		Messages:  []chat.Turn{{Role: chat.RoleSystem, Content: adv.Greeting, Timestamp: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[adv.ID] = append(s.sessions[adv.ID], session)
	s.current[adv.ID] = session.ID
	s.mu.Unlock()

	s.publish(EventCreated, adv.ID, session.ID)
	return session.Clone(), nil
}

// CurrentSession returns the advisor's active session, or false when no
// pointer is set or the pointer no longer resolves.
func (s *Store) CurrentSession(_ context.Context, advisorID string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := s.current[advisorID]
	if id == "" {
		return chat.Session{}, false
	}
	session := s.findLocked(advisorID, id)
	if session == nil {
		return chat.Session{}, false
	}
	return session.Clone(), true
}

// Session retrieves one session by identifier within an advisor's
// collection.
func (s *Store) Session(_ context.Context, advisorID, sessionID string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.findLocked(advisorID, sessionID)
	if session == nil {
		return chat.Session{}, false
	}
	return session.Clone(), true
}

// ReplaceMessages swaps the named session's transcript wholesale, touches
// UpdatedAt and recomputes the title. Unknown session ids are skipped
// silently; no other session is ever affected.
func (s *Store) ReplaceMessages(_ context.Context, advisorID, sessionID string, messages []chat.Turn) {
	s.mu.Lock()
	session := s.findLocked(advisorID, sessionID)
	if session == nil {
		s.mu.Unlock()
		return
	}
	session.Messages = append([]chat.Turn(nil), messages...)
	session.UpdatedAt = time.Now().UTC()
	session.Title = chat.DeriveTitle(session.Messages)
	s.mu.Unlock()

	s.publish(EventUpdated, advisorID, sessionID)
}

// SwitchSession repoints the advisor's current session. The target is not
// validated; callers pass ids obtained from ListSessions.
func (s *Store) SwitchSession(_ context.Context, advisorID, sessionID string) {
	s.mu.Lock()
	s.current[advisorID] = sessionID
	s.mu.Unlock()

	s.publish(EventSwitched, advisorID, sessionID)
}

// DeleteSession removes the session from the advisor's collection. When it
// was current, the last remaining session in insertion order becomes
// current, or none when the collection empties.
func (s *Store) DeleteSession(_ context.Context, advisorID, sessionID string) {
	s.mu.Lock()
	list := s.sessions[advisorID]
	idx := -1
	for i, session := range list {
		if session.ID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	list = append(list[:idx], list[idx+1:]...)
	s.sessions[advisorID] = list

	if s.current[advisorID] == sessionID {
		if len(list) > 0 {
			s.current[advisorID] = list[len(list)-1].ID
		} else {
			delete(s.current, advisorID)
		}
	}
	s.mu.Unlock()

	s.publish(EventDeleted, advisorID, sessionID)
}

// ListSessions returns the advisor's sessions, most recently updated first.
// Ties keep insertion order.
func (s *Store) ListSessions(_ context.Context, advisorID string) []chat.Session {
	s.mu.RLock()
	list := s.sessions[advisorID]
	copied := make([]chat.Session, 0, len(list))
	for _, session := range list {
		copied = append(copied, session.Clone())
	}
	s.mu.RUnlock()

	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].UpdatedAt.After(copied[j].UpdatedAt)
	})
	return copied
}

// findLocked resolves a session within one advisor's collection. Callers
// hold s.mu.
func (s *Store) findLocked(advisorID, sessionID string) *chat.Session {
	for _, session := range s.sessions[advisorID] {
		if session.ID == sessionID {
			return session
		}
	}
	return nil
}

func (s *Store) publish(typ EventType, advisorID, sessionID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(Event{
		Type:      typ,
		AdvisorID: advisorID,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	})
}
