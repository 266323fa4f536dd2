// Package quiz implements the trivia discount mini-game: themed question
// sets, free-text grading, and a one-attempt-per-activation session state
// machine.
package quiz

import (
	"math/rand"
	"strings"

	"github.com/go-faster/errors"
)

// Outcome is the binary result of grading one answer.
type Outcome string

const (
	// OutcomeCorrect means the answer matched an accepted answer.
	OutcomeCorrect Outcome = "correct"
	// OutcomeIncorrect means the answer matched none of them.
	OutcomeIncorrect Outcome = "incorrect"
)

// ErrNoAnswer is returned when the submitted answer is empty or whitespace
// only. That is a validation failure, not an incorrect answer: it does not
// consume the attempt.
var ErrNoAnswer = errors.New("no answer supplied")

// ErrUnknownSet is returned when a campaign reason code matches no question set.
var ErrUnknownSet = errors.New("unknown question set")

// Question is a single trivia question with its accepted answers.
type Question struct {
	Text     string
	Accepted []string
}

// QuestionSet is a themed, ordered list of questions keyed by a campaign
// reason code.
type QuestionSet struct {
	Reason      string
	Label       string
	Description string
	Questions   []Question
}

// SetFor returns the question set for a campaign reason code.
func SetFor(reason string) (*QuestionSet, error) {
	set, ok := sets[reason]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSet, "%q", reason)
	}
	return set, nil
}

// SelectQuestion picks a question index uniformly at random. Selection
// happens once per campaign activation; re-renders reuse the stored index.
func SelectQuestion(set *QuestionSet) int {
	return rand.Intn(len(set.Questions))
}

// Grade checks raw against the question's accepted answers: trimmed,
// case-folded, exact match only. Empty or whitespace-only input returns
// ErrNoAnswer before any grading happens.
func Grade(q Question, raw string) (Outcome, error) {
	answer := strings.ToLower(strings.TrimSpace(raw))
	if answer == "" {
		return "", ErrNoAnswer
	}
	for _, accepted := range q.Accepted {
		if answer == strings.ToLower(strings.TrimSpace(accepted)) {
			return OutcomeCorrect, nil
		}
	}
	return OutcomeIncorrect, nil
}
