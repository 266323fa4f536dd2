//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// quizUser returns a user ID unique to this test run so the single-attempt
// state never leaks between runs against a reused database.
func quizUser(name string) string {
	return fmt.Sprintf("quiz-%s-%d", name, time.Now().UnixNano())
}

func TestQuiz_Question(t *testing.T) {
	user := quizUser("question")

	resp := doGet(t, "/api/quiz?userId="+user)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	q := decodeJSON[quizResponse](t, resp)
	if q.Question == "" {
		t.Fatal("expected a question")
	}
	if q.DiscountPercent != 10 {
		t.Errorf("discountPercent: got %d, want seeded 10", q.DiscountPercent)
	}
	if q.PenaltyFee != "2.00" {
		t.Errorf("penaltyFee: got %q, want seeded 2.00", q.PenaltyFee)
	}
	if q.Answered {
		t.Error("fresh session must not be answered")
	}

	// Asking again returns the same question.
	again := doGet(t, "/api/quiz?userId="+user)
	defer again.Body.Close()
	wantStatus(t, again, http.StatusOK)

	q2 := decodeJSON[quizResponse](t, again)
	if q2.Question != q.Question {
		t.Errorf("question changed between reads: %q vs %q", q.Question, q2.Question)
	}
}

func TestQuiz_MissingUser(t *testing.T) {
	resp := doGet(t, "/api/quiz")
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestQuiz_SingleAttempt(t *testing.T) {
	user := quizUser("attempt")

	show := doGet(t, "/api/quiz?userId="+user)
	show.Body.Close()
	wantStatus(t, show, http.StatusOK)

	answer := map[string]string{"userId": user, "answer": "certainly wrong answer"}
	resp := doPost(t, "/api/quiz/answer", answer)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	graded := decodeJSON[quizAnswerResponse](t, resp)
	if graded.Outcome != "incorrect" || graded.Correct {
		t.Errorf("expected incorrect outcome, got %+v", graded)
	}

	// The second attempt is refused.
	second := doPost(t, "/api/quiz/answer", answer)
	defer second.Body.Close()
	wantStatus(t, second, http.StatusConflict)

	// The prompt now reports the frozen outcome.
	after := doGet(t, "/api/quiz?userId="+user)
	defer after.Body.Close()
	wantStatus(t, after, http.StatusOK)

	q := decodeJSON[quizResponse](t, after)
	if !q.Answered || q.Outcome != "incorrect" {
		t.Errorf("expected answered/incorrect, got %+v", q)
	}
}

func TestQuiz_EmptyAnswer(t *testing.T) {
	user := quizUser("empty")

	resp := doPost(t, "/api/quiz/answer", map[string]string{"userId": user, "answer": "   "})
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)
}
