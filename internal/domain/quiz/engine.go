package quiz

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
)

// ErrNoActiveCampaign is returned when the quiz campaign is off or outside
// its validity window.
var ErrNoActiveCampaign = errors.New("no active quiz campaign")

// Engine ties the campaign configuration, the question sets, and the
// session store together. It selects a question exactly once per
// (customer, campaign revision) and grades exactly one attempt.
type Engine struct {
	campaigns campaign.Repository
	store     SessionStore
	now       func() time.Time
	selectFn  func(*QuestionSet) int
}

// NewEngine creates an Engine backed by the given config repository and
// session store.
func NewEngine(campaigns campaign.Repository, store SessionStore) *Engine {
	return &Engine{
		campaigns: campaigns,
		store:     store,
		now:       time.Now,
		selectFn:  SelectQuestion,
	}
}

// Prompt is a question shown to a customer, together with the campaign
// terms it was shown under.
type Prompt struct {
	Question        Question
	Label           string
	DiscountPercent int
	PenaltyFee      string
	Answered        bool
	Outcome         Outcome
}

// Question returns the customer's current question, creating the session
// on first call. Returns ErrNoActiveCampaign when the quiz campaign is not
// in effect today.
func (e *Engine) Question(ctx context.Context, userID string) (*Prompt, error) {
	cfg, set, err := e.activeSet(ctx)
	if err != nil {
		return nil, err
	}

	key := SessionKey(userID, cfg.Reason, cfg.Revision)
	sess, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "load quiz session")
	}

	if sess == nil {
		sess = &Session{
			UserID:        userID,
			Reason:        cfg.Reason,
			Revision:      cfg.Revision,
			QuestionIndex: e.selectFn(set),
			State:         StateQuestionShown,
		}
		if err := e.store.Put(ctx, key, sess); err != nil {
			return nil, errors.Wrap(err, "store quiz session")
		}
	}

	return &Prompt{
		Question:        set.Questions[sess.QuestionIndex],
		Label:           set.Label,
		DiscountPercent: cfg.DiscountPercent,
		PenaltyFee:      cfg.PenaltyFee.StringFixed(2),
		Answered:        sess.State == StateAnswered,
		Outcome:         sess.Outcome,
	}, nil
}

// Answer grades the customer's single attempt and freezes the outcome.
// Empty answers are rejected with ErrNoAnswer without consuming the
// attempt; a second attempt returns ErrAlreadyAnswered.
func (e *Engine) Answer(ctx context.Context, userID, raw string) (Outcome, error) {
	cfg, set, err := e.activeSet(ctx)
	if err != nil {
		return "", err
	}

	key := SessionKey(userID, cfg.Reason, cfg.Revision)
	sess, err := e.store.Get(ctx, key)
	if err != nil {
		return "", errors.Wrap(err, "load quiz session")
	}
	if sess == nil {
		// Answering without having seen a question: select one now so the
		// audit trail still references a concrete question.
		sess = &Session{
			UserID:        userID,
			Reason:        cfg.Reason,
			Revision:      cfg.Revision,
			QuestionIndex: e.selectFn(set),
			State:         StateQuestionShown,
		}
	}
	if sess.State == StateAnswered {
		return "", ErrAlreadyAnswered
	}

	outcome, err := Grade(set.Questions[sess.QuestionIndex], raw)
	if err != nil {
		return "", err
	}

	sess.State = StateAnswered
	sess.Outcome = outcome
	sess.AnsweredAt = e.now()
	if err := e.store.Put(ctx, key, sess); err != nil {
		return "", errors.Wrap(err, "store quiz session")
	}
	return outcome, nil
}

// Result returns the frozen outcome and shown question for a customer's
// current session, or (nil, nil) when the campaign is inactive or the
// session is unanswered. Used by checkout to bind the trivia audit record.
func (e *Engine) Result(ctx context.Context, userID string) (*SessionResult, error) {
	cfg, set, err := e.activeSet(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveCampaign) {
			return nil, nil
		}
		return nil, err
	}

	sess, err := e.store.Get(ctx, SessionKey(userID, cfg.Reason, cfg.Revision))
	if err != nil {
		return nil, errors.Wrap(err, "load quiz session")
	}
	if sess == nil || sess.State != StateAnswered {
		return nil, nil
	}

	return &SessionResult{
		Question: set.Questions[sess.QuestionIndex].Text,
		Outcome:  sess.Outcome,
		Config:   cfg,
	}, nil
}

// SessionResult is an answered session joined with the campaign terms in
// force when it was answered.
type SessionResult struct {
	Question string
	Outcome  Outcome
	Config   *campaign.Quiz
}

func (e *Engine) activeSet(ctx context.Context) (*campaign.Quiz, *QuestionSet, error) {
	cfg, err := e.campaigns.GetQuiz(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load quiz config")
	}
	if !cfg.ActiveOn(campaign.DateOf(e.now())) {
		return nil, nil, ErrNoActiveCampaign
	}
	set, err := SetFor(cfg.Reason)
	if err != nil {
		return nil, nil, err
	}
	return cfg, set, nil
}
