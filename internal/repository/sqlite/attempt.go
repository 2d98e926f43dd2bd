package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

func (r *SQLiteRepo) CreateAttempt(ctx context.Context, a *models.Attempt) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("attempt is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO attempts (quiz_id, user_id, total_correct, total_questions, attempted_at) VALUES (?, ?, ?, ?, ?)`,
		a.QuizID, a.UserID, a.TotalCorrect, a.TotalQuestions, ts)
	if err != nil {
		return 0, mapErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID, a.AttemptedAt = id, ts

	return id, nil
}

func (r *SQLiteRepo) ListAttemptsByUser(ctx context.Context, userID int64) ([]models.Attempt, error) {
	return r.listAttempts(ctx, `SELECT a.id, a.quiz_id, a.user_id, a.total_correct, a.total_questions, a.attempted_at, q.title
		FROM attempts a JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.user_id = ? ORDER BY a.attempted_at DESC, a.id DESC`, userID)
}

func (r *SQLiteRepo) ListAttemptsByQuiz(ctx context.Context, quizID int64) ([]models.Attempt, error) {
	return r.listAttempts(ctx, `SELECT a.id, a.quiz_id, a.user_id, a.total_correct, a.total_questions, a.attempted_at, q.title
		FROM attempts a JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.quiz_id = ? ORDER BY a.attempted_at DESC, a.id DESC`, quizID)
}

func (r *SQLiteRepo) listAttempts(ctx context.Context, query string, args ...any) ([]models.Attempt, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Attempt{}
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.TotalCorrect, &a.TotalQuestions, &a.AttemptedAt, &a.QuizTitle); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
