package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/boards/pkg/models"
)

// ErrDuplicate is returned by implementations when an insert or update violates a
// uniqueness constraint (email, company owner, one application per job and candidate).
var ErrDuplicate = errors.New("duplicate record")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups of a missing row return (nil, nil).

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type QuizRepo interface {
	CreateQuiz(ctx context.Context, q *models.Quiz) (int64, error)
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)
	ListQuizzesByCreator(ctx context.Context, userID int64) ([]models.Quiz, error)
	UpdateQuiz(ctx context.Context, q *models.Quiz) error
	DeleteQuiz(ctx context.Context, id int64) error
}

type AttemptRepo interface {
	CreateAttempt(ctx context.Context, a *models.Attempt) (int64, error)
	ListAttemptsByUser(ctx context.Context, userID int64) ([]models.Attempt, error)
	ListAttemptsByQuiz(ctx context.Context, quizID int64) ([]models.Attempt, error)
}

type OTPRepo interface {
	UpsertOTP(ctx context.Context, o *models.OTP) error
	GetOTP(ctx context.Context, email string) (*models.OTP, error)
	DeleteOTP(ctx context.Context, email string) error
}

type CandidateProfileRepo interface {
	GetCandidateProfile(ctx context.Context, userID int64) (*models.CandidateProfile, error)
	UpsertCandidateProfile(ctx context.Context, p *models.CandidateProfile) error
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByOwner(ctx context.Context, ownerID int64) (*models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	// GetJob returns soft-deleted rows too; callers check IsDeleted.
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListOpenJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	SoftDeleteJob(ctx context.Context, id int64) error
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	// GetApplication loads the resume bytes as well.
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) error
}
