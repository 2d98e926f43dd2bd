package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

const jobColumns = `j.id, j.owner_id, j.title, j.description, j.requirements, j.category, j.job_type, j.location, j.salary_range, j.expires_at, j.is_deleted, j.created, j.updated, COALESCE(c.name, '')`

const jobFrom = ` FROM jobs j LEFT JOIN companies c ON c.owner_id = j.owner_id`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (owner_id, title, description, requirements, category, job_type, location, salary_range, expires_at, is_deleted, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		j.OwnerID, j.Title, j.Description, j.Requirements, j.Category, j.JobType, j.Location, j.SalaryRange, j.ExpiresAt, ts, ts)
	if err != nil {
		return 0, mapErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	j.ID, j.Created, j.Updated = id, ts, ts

	return id, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

// ListOpenJobs returns every job that has not been soft deleted, newest first.
func (r *SQLiteRepo) ListOpenJobs(ctx context.Context) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.is_deleted = 0 ORDER BY j.created DESC, j.id DESC`)
}

func (r *SQLiteRepo) ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.owner_id = ? AND j.is_deleted = 0 ORDER BY j.created DESC, j.id DESC`, ownerID)
}

func (r *SQLiteRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	j.Updated = now()
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, description = ?, requirements = ?, category = ?, job_type = ?, location = ?, salary_range = ?, expires_at = ?, updated = ? WHERE id = ?`,
		j.Title, j.Description, j.Requirements, j.Category, j.JobType, j.Location, j.SalaryRange, j.ExpiresAt, j.Updated, j.ID)
	return mapErr(err)
}

// SoftDeleteJob hides the job from listings; the row and its applications stay.
func (r *SQLiteRepo) SoftDeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET is_deleted = ?, updated = ? WHERE id = ?`, boolToInt(true), now(), id)
	return err
}

func scanJob(s scanner) (*models.Job, error) {
	var j models.Job
	var deleted int
	if err := s.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.Requirements, &j.Category, &j.JobType, &j.Location, &j.SalaryRange, &j.ExpiresAt, &deleted, &j.Created, &j.Updated, &j.CompanyName); err != nil {
		return nil, err
	}
	j.IsDeleted = deleted != 0

	return &j, nil
}
