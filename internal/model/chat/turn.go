package chat

import "time"

// Role identifies who authored a turn. The set is closed: a turn is either
// the user's or the system's, and the role decides which side of the
// transcript it renders on.
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// ThinkingPlaceholder is the content of the transient system turn shown
// while a reply is being generated. It never survives a settled submit and
// is excluded from inference input.
const ThinkingPlaceholder = "Thinking..."

// Turn is a single message in a session transcript.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserTurn builds a user-authored turn stamped now.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// SystemTurn builds a system-authored turn stamped now.
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content, Timestamp: time.Now().UTC()}
}

// IsPending reports whether the turn is the transient loading placeholder.
func (t Turn) IsPending() bool {
	return t.Role == RoleSystem && t.Content == ThinkingPlaceholder
}

// PromptHistory returns the turns that go to the inference service: the
// transcript minus the leading greeting and minus any pending placeholder.
func PromptHistory(messages []Turn) []Turn {
	history := make([]Turn, 0, len(messages))
	for i, turn := range messages {
		if i == 0 && turn.Role == RoleSystem {
			// Seeded greeting, never part of the prompt.
			continue
		}
		if turn.IsPending() {
			continue
		}
		history = append(history, turn)
	}
	return history
}
