package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO applications (job_id, candidate_id, phone_number, cover_letter, portfolio_link, linkedin_url, source, resume_file, resume_filename, status, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.CandidateID, a.PhoneNumber, a.CoverLetter, a.PortfolioLink, a.LinkedInURL, a.Source, a.Resume, a.ResumeFilename, a.Status, ts)
	if err != nil {
		return 0, mapErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID, a.Created = id, ts

	return id, nil
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT a.id, a.job_id, a.candidate_id, a.phone_number, a.cover_letter, a.portfolio_link, a.linkedin_url, a.source,
			a.resume_file, a.resume_filename, a.status, a.created, j.title, u.name, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.candidate_id
		WHERE a.id = ?`, id)

	var a models.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.PhoneNumber, &a.CoverLetter, &a.PortfolioLink, &a.LinkedInURL, &a.Source,
		&a.Resume, &a.ResumeFilename, &a.Status, &a.Created, &a.JobTitle, &a.CandidateName, &a.CandidateEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}

// ListApplicationsByJob returns the applications to a job without resume bytes.
func (r *SQLiteRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `WHERE a.job_id = ?`, jobID)
}

// ListApplicationsByCandidate returns a candidate's applications without resume bytes.
func (r *SQLiteRepo) ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `WHERE a.candidate_id = ?`, candidateID)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, where string, args ...any) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.job_id, a.candidate_id, a.phone_number, a.cover_letter, a.portfolio_link, a.linkedin_url, a.source,
			a.resume_filename, a.status, a.created, j.title, COALESCE(c.name, ''), u.name, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN companies c ON c.owner_id = j.owner_id
		JOIN users u ON u.id = a.candidate_id
		`+where+` ORDER BY a.created DESC, a.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.PhoneNumber, &a.CoverLetter, &a.PortfolioLink, &a.LinkedInURL, &a.Source,
			&a.ResumeFilename, &a.Status, &a.Created, &a.JobTitle, &a.CompanyName, &a.CandidateName, &a.CandidateEmail); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE applications SET status = ? WHERE id = ?`, status, id)
	return err
}
