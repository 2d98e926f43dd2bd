package models

// Domain models matching the schemas in db/migrations/quiz and db/migrations/jobboard.
// Timestamps are unix milliseconds (UTC).

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	Role         string `json:"role,omitempty" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

const (
	RoleUser      = "user"
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// Question is embedded in a quiz; it has no identity of its own.
type Question struct {
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

type Quiz struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	TimeLimit   int        `json:"time_limit" db:"time_limit"`
	CreatedBy   int64      `json:"created_by" db:"created_by"`
	Questions   []Question `json:"questions" db:"questions"`
	Created     int64      `json:"created" db:"created"`
	Updated     int64      `json:"updated" db:"updated"`
}

type Attempt struct {
	ID             int64  `json:"id" db:"id"`
	QuizID         int64  `json:"quiz_id" db:"quiz_id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	TotalCorrect   int    `json:"total_correct" db:"total_correct"`
	TotalQuestions int    `json:"total_questions" db:"total_questions"`
	AttemptedAt    int64  `json:"attempted_at" db:"attempted_at"`
	QuizTitle      string `json:"quiz_title,omitempty" db:"-"`
}

// QuizSummary aggregates one user's attempts at one quiz.
type QuizSummary struct {
	QuizID           int64   `json:"quiz_id"`
	QuizTitle        string  `json:"quiz_title,omitempty"`
	BestScore        float64 `json:"best_score"`
	BestCorrect      int     `json:"best_correct"`
	BestTotal        int     `json:"best_total"`
	TotalAttempts    int     `json:"total_attempts"`
	FirstAttemptedAt int64   `json:"first_attempted_at"`
	LastAttemptedAt  int64   `json:"last_attempted_at"`
}

type OTP struct {
	Email     string `json:"email" db:"email"`
	Code      string `json:"-" db:"code"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
}

type CandidateProfile struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"user_id" db:"user_id"`
	Headline     string `json:"headline" db:"headline"`
	Bio          string `json:"bio" db:"bio"`
	Skills       string `json:"skills" db:"skills"`
	Experience   string `json:"experience" db:"experience"`
	Education    string `json:"education" db:"education"`
	LinkedInURL  string `json:"linkedin_url" db:"linkedin_url"`
	PortfolioURL string `json:"portfolio_url" db:"portfolio_url"`
	GitHubURL    string `json:"github_url" db:"github_url"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Company struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Website     string `json:"website" db:"website"`
	LogoURL     string `json:"logo_url" db:"logo_url"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

type Job struct {
	ID           int64  `json:"id" db:"id"`
	OwnerID      int64  `json:"owner_id" db:"owner_id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	Requirements string `json:"requirements" db:"requirements"`
	Category     string `json:"category" db:"category"`
	JobType      string `json:"job_type" db:"job_type"`
	Location     string `json:"location" db:"location"`
	SalaryRange  string `json:"salary_range" db:"salary_range"`
	ExpiresAt    string `json:"expires_at" db:"expires_at"`
	IsDeleted    bool   `json:"-" db:"is_deleted"`
	CompanyName  string `json:"company_name,omitempty" db:"-"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Application struct {
	ID             int64  `json:"id" db:"id"`
	JobID          int64  `json:"job_id" db:"job_id"`
	CandidateID    int64  `json:"candidate_id" db:"candidate_id"`
	PhoneNumber    string `json:"phone_number" db:"phone_number"`
	CoverLetter    string `json:"cover_letter" db:"cover_letter"`
	PortfolioLink  string `json:"portfolio_link" db:"portfolio_link"`
	LinkedInURL    string `json:"linkedin_url" db:"linkedin_url"`
	Source         string `json:"source" db:"source"`
	Resume         []byte `json:"-" db:"resume_file"`
	ResumeFilename string `json:"resume_filename" db:"resume_filename"`
	Status         string `json:"status" db:"status"`
	Created        int64  `json:"created" db:"created"`

	// Filled by list queries and the API layer.
	JobTitle       string `json:"job_title,omitempty" db:"-"`
	CompanyName    string `json:"company_name,omitempty" db:"-"`
	CandidateName  string `json:"candidate_name,omitempty" db:"-"`
	CandidateEmail string `json:"candidate_email,omitempty" db:"-"`
	ResumeURL      string `json:"resumeUrl,omitempty" db:"-"`
}

const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusInterview   = "interview"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// ValidApplicationStatus reports whether s is one of the known application statuses.
func ValidApplicationStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}
