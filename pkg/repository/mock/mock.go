package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

// Test helpers and mocks. Each mock keeps its rows in memory and returns Err, when
// set, from every method.
type Mocks struct {
	UserRepo    *mockUserRepo
	OTPRepo     *mockOTPRepo
	QuizRepo    *mockQuizRepo
	AttemptRepo *mockAttemptRepo
	CompanyRepo *mockCompanyRepo
	JobRepo     *mockJobRepo
	AppRepo     *mockApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:    &mockUserRepo{},
		OTPRepo:     &mockOTPRepo{Stored: map[string]models.OTP{}},
		QuizRepo:    &mockQuizRepo{Stored: map[int64]models.Quiz{}},
		AttemptRepo: &mockAttemptRepo{},
		CompanyRepo: &mockCompanyRepo{},
		JobRepo:     &mockJobRepo{Stored: map[int64]models.Job{}},
		AppRepo:     &mockApplicationRepo{},
	}
}

var _ repository.UserRepo = (*mockUserRepo)(nil)
var _ repository.OTPRepo = (*mockOTPRepo)(nil)
var _ repository.QuizRepo = (*mockQuizRepo)(nil)
var _ repository.AttemptRepo = (*mockAttemptRepo)(nil)
var _ repository.CompanyRepo = (*mockCompanyRepo)(nil)
var _ repository.JobRepo = (*mockJobRepo)(nil)
var _ repository.ApplicationRepo = (*mockApplicationRepo)(nil)

type mockUserRepo struct {
	mu        sync.Mutex
	Stored    []models.User
	CreateErr error
	GetErr    error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, s := range m.Stored {
		if s.Email == u.Email {
			return 0, repository.ErrDuplicate
		}
	}
	u.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, *u)
	return u.ID, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.ID == id {
			u := s
			return &u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.Email == email {
			u := s
			return &u, nil
		}
	}
	return nil, nil
}

type mockOTPRepo struct {
	mu     sync.Mutex
	Stored map[string]models.OTP
	Err    error
}

func (m *mockOTPRepo) UpsertOTP(ctx context.Context, o *models.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Stored[o.Email] = *o
	return nil
}

func (m *mockOTPRepo) GetOTP(ctx context.Context, email string) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.Stored[email]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *mockOTPRepo) DeleteOTP(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Stored, email)
	return nil
}

type mockQuizRepo struct {
	mu     sync.Mutex
	Stored map[int64]models.Quiz
	nextID int64
	Err    error
}

func (m *mockQuizRepo) CreateQuiz(ctx context.Context, q *models.Quiz) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	q.ID = m.nextID
	m.Stored[q.ID] = *q
	return q.ID, nil
}

func (m *mockQuizRepo) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	q, ok := m.Stored[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *mockQuizRepo) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return m.list(func(models.Quiz) bool { return true })
}

func (m *mockQuizRepo) ListQuizzesByCreator(ctx context.Context, userID int64) ([]models.Quiz, error) {
	return m.list(func(q models.Quiz) bool { return q.CreatedBy == userID })
}

func (m *mockQuizRepo) list(keep func(models.Quiz) bool) ([]models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Quiz{}
	for _, q := range m.Stored {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuizRepo) UpdateQuiz(ctx context.Context, q *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Stored[q.ID] = *q
	return nil
}

func (m *mockQuizRepo) DeleteQuiz(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Stored, id)
	return nil
}

type mockAttemptRepo struct {
	mu     sync.Mutex
	Stored []models.Attempt
	Err    error
}

func (m *mockAttemptRepo) CreateAttempt(ctx context.Context, a *models.Attempt) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	a.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *mockAttemptRepo) ListAttemptsByUser(ctx context.Context, userID int64) ([]models.Attempt, error) {
	return m.list(func(a models.Attempt) bool { return a.UserID == userID })
}

func (m *mockAttemptRepo) ListAttemptsByQuiz(ctx context.Context, quizID int64) ([]models.Attempt, error) {
	return m.list(func(a models.Attempt) bool { return a.QuizID == quizID })
}

func (m *mockAttemptRepo) list(keep func(models.Attempt) bool) ([]models.Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Attempt{}
	for _, a := range m.Stored {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockCompanyRepo struct {
	mu     sync.Mutex
	Stored []models.Company
	Err    error
}

func (m *mockCompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for _, s := range m.Stored {
		if s.OwnerID == c.OwnerID {
			return 0, repository.ErrDuplicate
		}
	}
	c.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, *c)
	return c.ID, nil
}

func (m *mockCompanyRepo) GetCompanyByOwner(ctx context.Context, ownerID int64) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Stored {
		if s.OwnerID == ownerID {
			c := s
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockCompanyRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, s := range m.Stored {
		if s.OwnerID == c.OwnerID {
			m.Stored[i] = *c
		}
	}
	return nil
}

type mockJobRepo struct {
	mu     sync.Mutex
	Stored map[int64]models.Job
	nextID int64
	Err    error
}

func (m *mockJobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	j.ID = m.nextID
	m.Stored[j.ID] = *j
	return j.ID, nil
}

func (m *mockJobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	j, ok := m.Stored[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (m *mockJobRepo) ListOpenJobs(ctx context.Context) ([]models.Job, error) {
	return m.list(func(j models.Job) bool { return !j.IsDeleted })
}

func (m *mockJobRepo) ListJobsByOwner(ctx context.Context, ownerID int64) ([]models.Job, error) {
	return m.list(func(j models.Job) bool { return !j.IsDeleted && j.OwnerID == ownerID })
}

func (m *mockJobRepo) list(keep func(models.Job) bool) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Job{}
	for _, j := range m.Stored {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Stored[j.ID] = *j
	return nil
}

func (m *mockJobRepo) SoftDeleteJob(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if j, ok := m.Stored[id]; ok {
		j.IsDeleted = true
		m.Stored[id] = j
	}
	return nil
}

type mockApplicationRepo struct {
	mu     sync.Mutex
	Stored []models.Application
	Err    error
}

func (m *mockApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for _, s := range m.Stored {
		if s.JobID == a.JobID && s.CandidateID == a.CandidateID {
			return 0, repository.ErrDuplicate
		}
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	a.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *mockApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Stored {
		if s.ID == id {
			a := s
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	return m.list(func(a models.Application) bool { return a.JobID == jobID })
}

func (m *mockApplicationRepo) ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error) {
	return m.list(func(a models.Application) bool { return a.CandidateID == candidateID })
}

func (m *mockApplicationRepo) list(keep func(models.Application) bool) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Application{}
	for _, a := range m.Stored {
		if keep(a) {
			a.Resume = nil
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Status = status
		}
	}
	return nil
}
