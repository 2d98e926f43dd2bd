package api

import (
	"net/http"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/scoring"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

type AttemptHandler struct {
	attempts repository.AttemptRepo
	quizzes  repository.QuizRepo
}

func NewAttemptHandler(ar repository.AttemptRepo, qr repository.QuizRepo) *AttemptHandler {
	return &AttemptHandler{attempts: ar, quizzes: qr}
}

type attemptRequest struct {
	QuizID         int64 `json:"quiz_id" validate:"required,gt=0"`
	TotalCorrect   int   `json:"total_correct" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int   `json:"total_questions" validate:"gte=0"`
}

// CreateAttempt records a finished attempt for the caller.
func (h *AttemptHandler) CreateAttempt(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req attemptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := h.quizzes.GetQuiz(r.Context(), req.QuizID)
	if err != nil {
		writeError(w, r, apperr.Internal("get quiz", err))
		return
	}
	if q == nil {
		writeError(w, r, errQuizNotFound)
		return
	}

	a := &models.Attempt{
		QuizID:         q.ID,
		UserID:         caller,
		TotalCorrect:   req.TotalCorrect,
		TotalQuestions: req.TotalQuestions,
	}
	id, err := h.attempts.CreateAttempt(r.Context(), a)
	if err != nil {
		writeError(w, r, apperr.Internal("create attempt", err))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Successful", ID: id})
}

func (h *AttemptHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	attempts, err := h.attempts.ListAttemptsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, apperr.Internal("list attempts by user", err))
		return
	}

	writeJSON(w, http.StatusOK, attempts)
}

func (h *AttemptHandler) ListByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	attempts, err := h.attempts.ListAttemptsByQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, r, apperr.Internal("list attempts by quiz", err))
		return
	}

	writeJSON(w, http.StatusOK, attempts)
}

// SummaryByUser returns the dashboard view: best score per quiz, most recent first.
func (h *AttemptHandler) SummaryByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	attempts, err := h.attempts.ListAttemptsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, apperr.Internal("list attempts by user", err))
		return
	}

	writeJSON(w, http.StatusOK, scoring.Summarize(attempts))
}
