package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// State is the quiz session state machine:
//
//	Idle -> QuestionShown -> Answered{Correct|Incorrect}
//
// Idle is represented by the absence of a stored session. Once answered,
// the outcome is fixed for the session until the campaign context resets
// (a new session key via a new config revision).
type State string

const (
	// StateQuestionShown means a question was selected and shown, not yet answered.
	StateQuestionShown State = "question_shown"
	// StateAnswered means the single attempt has been consumed.
	StateAnswered State = "answered"
)

// ErrAlreadyAnswered is returned when a second grading attempt is made in
// the same session.
var ErrAlreadyAnswered = errors.New("quiz already answered for this session")

// Session is one customer's quiz attempt bound to a specific campaign
// configuration revision.
type Session struct {
	UserID        string    `json:"userId"`
	Reason        string    `json:"reason"`
	Revision      int64     `json:"revision"`
	QuestionIndex int       `json:"questionIndex"`
	State         State     `json:"state"`
	Outcome       Outcome   `json:"outcome,omitempty"`
	AnsweredAt    time.Time `json:"answeredAt,omitempty"`
}

// SessionKey identifies a session. The config revision is part of the key,
// so toggling or editing the quiz campaign starts everyone fresh.
func SessionKey(userID, reason string, revision int64) string {
	return fmt.Sprintf("quiz:%s:%s:%d", userID, reason, revision)
}

// SessionStore persists quiz sessions. Get returns (nil, nil) when no
// session exists for the key.
type SessionStore interface {
	Get(ctx context.Context, key string) (*Session, error)
	Put(ctx context.Context, key string, s *Session) error
}

// MemoryStore is an in-process SessionStore used in tests and as a
// fallback when Redis is not configured.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Get returns the stored session for key, or (nil, nil).
func (m *MemoryStore) Get(_ context.Context, key string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Put stores s under key.
func (m *MemoryStore) Put(_ context.Context, key string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = *s
	return nil
}
