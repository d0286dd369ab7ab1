package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Actions   []Action  `json:"-"`
}

// Transcript is an append-only message log. Messages are never edited or
// removed.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
	newID    func() string
}

func NewTranscript() *Transcript {
	return &Transcript{now: time.Now, newID: uuid.NewString}
}

func (t *Transcript) AppendUser(content string) Message {
	return t.append(RoleUser, content, nil)
}

func (t *Transcript) AppendAssistant(content string, actions []Action) Message {
	return t.append(RoleAssistant, content, actions)
}

func (t *Transcript) append(role Role, content string, actions []Action) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	msg := Message{
		ID:        t.newID(),
		Role:      role,
		Content:   content,
		CreatedAt: t.now(),
		Actions:   actions,
	}
	t.messages = append(t.messages, msg)
	return msg
}

func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// LastSuggestion returns the item of the newest Recommend action.
func (t *Transcript) LastSuggestion() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.messages) - 1; i >= 0; i-- {
		for _, action := range t.messages[i].Actions {
			if rec, ok := action.(Recommend); ok {
				return rec.ItemID
			}
		}
	}
	return ""
}
