package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/garnizeh/boards/pkg/models"
)

const quizColumns = `id, title, description, category, time_limit, created_by, questions, created, updated`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepo) CreateQuiz(ctx context.Context, q *models.Quiz) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("quiz is nil")
	}

	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return 0, fmt.Errorf("encode questions: %w", err)
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO quizzes (title, description, category, time_limit, created_by, questions, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Title, q.Description, q.Category, q.TimeLimit, q.CreatedBy, string(questions), ts, ts)
	if err != nil {
		return 0, mapErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	q.ID, q.Created, q.Updated = id, ts, ts

	return id, nil
}

func (r *SQLiteRepo) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = ?`, id)
	q, err := scanQuiz(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return q, nil
}

func (r *SQLiteRepo) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return r.listQuizzes(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY id DESC`)
}

func (r *SQLiteRepo) ListQuizzesByCreator(ctx context.Context, userID int64) ([]models.Quiz, error) {
	return r.listQuizzes(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE created_by = ? ORDER BY id DESC`, userID)
}

func (r *SQLiteRepo) listQuizzes(ctx context.Context, query string, args ...any) ([]models.Quiz, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateQuiz(ctx context.Context, q *models.Quiz) error {
	if q == nil {
		return fmt.Errorf("quiz is nil")
	}

	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	q.Updated = now()
	_, err = r.conn.Exec(ctx, `UPDATE quizzes SET title = ?, description = ?, category = ?, time_limit = ?, questions = ?, updated = ? WHERE id = ?`,
		q.Title, q.Description, q.Category, q.TimeLimit, string(questions), q.Updated, q.ID)
	return mapErr(err)
}

func (r *SQLiteRepo) DeleteQuiz(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err == nil {
		r.logger.Debug("quiz deleted", slog.Int64("quiz_id", id))
	}
	return err
}

func scanQuiz(s scanner) (*models.Quiz, error) {
	var q models.Quiz
	var questions string
	if err := s.Scan(&q.ID, &q.Title, &q.Description, &q.Category, &q.TimeLimit, &q.CreatedBy, &questions, &q.Created, &q.Updated); err != nil {
		return nil, err
	}

	q.Questions = []models.Question{}
	if questions != "" {
		if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
			return nil, fmt.Errorf("decode questions of quiz %d: %w", q.ID, err)
		}
	}

	return &q, nil
}
