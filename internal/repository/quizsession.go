package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

// Sessions outlive a typical shopping visit but not a campaign. The TTL
// only bounds Redis memory; correctness comes from the revision in the key.
const quizSessionTTL = 24 * time.Hour

var _ quiz.SessionStore = (*QuizSessionStore)(nil)

// QuizSessionStore keeps quiz sessions in Redis as JSON values.
type QuizSessionStore struct {
	rdb *redis.Client
}

// NewQuizSessionStore returns a QuizSessionStore backed by rdb.
func NewQuizSessionStore(rdb *redis.Client) *QuizSessionStore {
	return &QuizSessionStore{rdb: rdb}
}

// Get returns the session stored under key, or (nil, nil) when absent.
func (s *QuizSessionStore) Get(ctx context.Context, key string) (*quiz.Session, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting quiz session: %w", err)
	}
	var sess quiz.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decoding quiz session: %w", err)
	}
	return &sess, nil
}

// Put stores sess under key, refreshing the TTL.
func (s *QuizSessionStore) Put(ctx context.Context, key string, sess *quiz.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding quiz session: %w", err)
	}
	if err := s.rdb.Set(ctx, key, raw, quizSessionTTL).Err(); err != nil {
		return fmt.Errorf("putting quiz session: %w", err)
	}
	return nil
}
