package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

// QuizQuestion returns the customer's current question, selecting one on
// first call. 404 when no quiz campaign is in effect today.
func (h *Handler) QuizQuestion(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}

	prompt, err := h.quiz.Question(r.Context(), userID)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveCampaign) {
			writeError(w, http.StatusNotFound, "no active quiz campaign")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("question", func(e *jx.Encoder) { e.Str(prompt.Question.Text) })
			e.Field("label", func(e *jx.Encoder) { e.Str(prompt.Label) })
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(prompt.DiscountPercent) })
			e.Field("penaltyFee", func(e *jx.Encoder) { e.Str(prompt.PenaltyFee) })
			e.Field("answered", func(e *jx.Encoder) { e.Bool(prompt.Answered) })
			if prompt.Answered {
				e.Field("outcome", func(e *jx.Encoder) { e.Str(string(prompt.Outcome)) })
			}
		})
	})
}

type quizAnswerRequest struct {
	UserID string `json:"userId"`
	Answer string `json:"answer"`
}

// QuizAnswer grades the customer's single attempt.
func (h *Handler) QuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}

	outcome, err := h.quiz.Answer(r.Context(), req.UserID, req.Answer)
	switch {
	case errors.Is(err, quiz.ErrNoActiveCampaign):
		writeError(w, http.StatusNotFound, "no active quiz campaign")
		return
	case errors.Is(err, quiz.ErrNoAnswer):
		writeError(w, http.StatusBadRequest, "answer required")
		return
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		writeError(w, http.StatusConflict, "quiz already answered")
		return
	case err != nil:
		internalError(w, r, err)
		return
	}

	// Preview of the amount this outcome will contribute at checkout,
	// expressed in the campaign's current terms.
	cfg, err := h.campaigns.GetQuiz(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("outcome", func(e *jx.Encoder) { e.Str(string(outcome)) })
			e.Field("correct", func(e *jx.Encoder) { e.Bool(outcome == quiz.OutcomeCorrect) })
			if cfg == nil {
				return
			}
			if outcome == quiz.OutcomeCorrect {
				e.Field("discountPercent", func(e *jx.Encoder) { e.Int(cfg.DiscountPercent) })
			} else {
				e.Field("penaltyFee", func(e *jx.Encoder) { e.Str(cfg.PenaltyFee.StringFixed(2)) })
			}
		})
	})
}
