package engine

import (
	"strings"

	"github.com/ferateo/bizbot/internal/models"
)

// MaxSessionTurns bounds a conversation session to 5 exchanges.
const MaxSessionTurns = 10

// Session holds the bounded turn history of one conversation. It lives as
// long as its engine instance and is never persisted. Not safe for
// concurrent use; callers keep sessions request- or chat-scoped.
type Session struct {
	turns []models.Turn
}

func NewSession() *Session {
	return &Session{}
}

// Append records a turn, evicting the oldest once MaxSessionTurns is
// exceeded.
func (s *Session) Append(role, text string) {
	s.turns = append(s.turns, models.Turn{Role: role, Text: text})
	if len(s.turns) > MaxSessionTurns {
		s.turns = s.turns[len(s.turns)-MaxSessionTurns:]
	}
}

// Turns returns a copy of the retained history, oldest first.
func (s *Session) Turns() []models.Turn {
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	return len(s.turns)
}

// Reset drops the retained history.
func (s *Session) Reset() {
	s.turns = nil
}

// Transcript renders the history as prompt text.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, turn := range s.turns {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		switch turn.Role {
		case models.RoleModel:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}
