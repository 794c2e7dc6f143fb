package chat

import (
	"time"
	"unicode/utf8"
)

// DefaultTitle labels a session that has no user turn yet.
const DefaultTitle = "New Chat"

// titleLimit caps derived titles at 30 characters before the ellipsis.
const titleLimit = 30

// Session is one conversation thread scoped to a single advisor. Messages
// are kept in insertion order, which is chronological order; the first entry
// is always the advisor greeting seeded at creation.
type Session struct {
	ID        string    `json:"id"`
	AdvisorID string    `json:"advisorId"`
	Title     string    `json:"title"`
	Messages  []Turn    `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers can't mutate store-owned state.
func (s Session) Clone() Session {
	copied := s
	copied.Messages = append([]Turn(nil), s.Messages...)
	return copied
}

// DeriveTitle computes a session's display title from its transcript: the
// first user turn's content, cut to 30 characters with a trailing ellipsis
// when longer, or DefaultTitle when the user hasn't written anything yet.
func DeriveTitle(messages []Turn) string {
	for _, turn := range messages {
		if turn.Role != RoleUser {
			continue
		}
		if utf8.RuneCountInString(turn.Content) <= titleLimit {
			return turn.Content
		}
		runes := []rune(turn.Content)
		return string(runes[:titleLimit]) + "..."
	}
	return DefaultTitle
}
