package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

func (r *SQLiteRepo) GetCandidateProfile(ctx context.Context, userID int64) (*models.CandidateProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, headline, bio, skills, experience, education, linkedin_url, portfolio_url, github_url, updated
		FROM candidate_profiles WHERE user_id = ?`, userID)

	var p models.CandidateProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.Skills, &p.Experience, &p.Education, &p.LinkedInURL, &p.PortfolioURL, &p.GitHubURL, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}

// UpsertCandidateProfile creates the profile of p.UserID or replaces its fields.
func (r *SQLiteRepo) UpsertCandidateProfile(ctx context.Context, p *models.CandidateProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	p.Updated = now()
	_, err := r.conn.Exec(ctx, `INSERT INTO candidate_profiles (user_id, headline, bio, skills, experience, education, linkedin_url, portfolio_url, github_url, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			headline = excluded.headline,
			bio = excluded.bio,
			skills = excluded.skills,
			experience = excluded.experience,
			education = excluded.education,
			linkedin_url = excluded.linkedin_url,
			portfolio_url = excluded.portfolio_url,
			github_url = excluded.github_url,
			updated = excluded.updated`,
		p.UserID, p.Headline, p.Bio, p.Skills, p.Experience, p.Education, p.LinkedInURL, p.PortfolioURL, p.GitHubURL, p.Updated)
	return mapErr(err)
}
