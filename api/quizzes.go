package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/quizschema"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

var errQuizNotFound = apperr.NotFound("Quiz not found")

type QuizHandler struct {
	quizzes repository.QuizRepo
}

func NewQuizHandler(qr repository.QuizRepo) *QuizHandler {
	return &QuizHandler{quizzes: qr}
}

type quizData struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	TimeLimit   intOrString     `json:"time_limit" validate:"gte=0"`
	Questions   json.RawMessage `json:"questions"`
}

type quizRequest struct {
	QuizData quizData `json:"quizData" validate:"required"`
}

// readQuiz decodes and validates a quiz payload, including its questions.
func readQuiz(w http.ResponseWriter, r *http.Request) (*models.Quiz, error) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}

	questions, err := quizschema.Validate(r.Context(), req.QuizData.Questions)
	if err != nil {
		return nil, err
	}

	return &models.Quiz{
		Title:       strings.TrimSpace(req.QuizData.Title),
		Description: req.QuizData.Description,
		Category:    req.QuizData.Category,
		TimeLimit:   int(req.QuizData.TimeLimit),
		Questions:   questions,
	}, nil
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q, err := readQuiz(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q.CreatedBy = caller

	id, err := h.quizzes.CreateQuiz(r.Context(), q)
	if err != nil {
		writeError(w, r, apperr.Internal("create quiz", err))
		return
	}

	logger.Info("quiz created", slog.Int64("quiz_id", id), slog.Int64("user_id", caller))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successful", ID: id})
}

func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, r, apperr.Internal("list quizzes", err))
		return
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	quizzes, err := h.quizzes.ListQuizzesByCreator(r.Context(), userID)
	if err != nil {
		writeError(w, r, apperr.Internal("list quizzes by user", err))
		return
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// UpdateQuiz replaces the quiz fields. Only the creator may update; concurrent
// updates are last write wins.
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	existing, err := h.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureOwner(existing.CreatedBy, caller); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := readQuiz(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q.ID, q.CreatedBy, q.Created = existing.ID, existing.CreatedBy, existing.Created

	if err := h.quizzes.UpdateQuiz(r.Context(), q); err != nil {
		writeError(w, r, apperr.Internal("update quiz", err))
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// DeleteQuiz removes the quiz and, through the foreign key, its attempts.
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	existing, err := h.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureOwner(existing.CreatedBy, caller); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.quizzes.DeleteQuiz(r.Context(), existing.ID); err != nil {
		writeError(w, r, apperr.Internal("delete quiz", err))
		return
	}

	logger.Info("quiz deleted", slog.Int64("quiz_id", existing.ID), slog.Int64("user_id", caller))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Quiz deleted", ID: existing.ID})
}

func (h *QuizHandler) load(r *http.Request) (*models.Quiz, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	q, err := h.quizzes.GetQuiz(r.Context(), id)
	if err != nil {
		return nil, apperr.Internal("get quiz", err)
	}
	if q == nil {
		return nil, errQuizNotFound
	}

	return q, nil
}
