package api

import (
	"net/http"

	"github.com/garnizeh/boards/internal/auth"
	"github.com/garnizeh/boards/internal/config"
	"github.com/garnizeh/boards/internal/db"
	"github.com/garnizeh/boards/internal/mailer"
	"github.com/garnizeh/boards/internal/otp"
	"github.com/garnizeh/boards/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

// newRouter returns a router with the shared middleware chain and the system endpoints.
func newRouter(cfg *config.Config, service, version, buildTime string) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware(cfg.AllowedOrigin))

	// Preflight requests only reach the middleware when a route matches. A custom
	// matcher keeps other methods on unknown paths at 404 instead of 405.
	r.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
		return req.Method == http.MethodOptions
	}).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	systemHandler := NewSystemHandler(service)
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)

	return r
}

func newAuthService(cfg *config.Config, repo *sqlite.SQLiteRepo) *auth.Service {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.Issuer, cfg.TokenDuration)
	return auth.NewService(repo, tokens, cfg.BcryptCost, logger)
}

// SetupQuizRoutes wires the quiz platform API.
func SetupQuizRoutes(cfg *config.Config, version, buildTime string, d *db.DB) *mux.Router {
	r := newRouter(cfg, "quiz", version, buildTime)

	repo := sqlite.New(d, logger)
	authSvc := newAuthService(cfg, repo)

	authHandler := NewAuthHandler(authSvc)
	quizHandler := NewQuizHandler(repo)
	attemptHandler := NewAttemptHandler(repo, repo)

	// Open endpoints
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/getallquizzes", quizHandler.ListQuizzes).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/ByUserId/{id:[0-9]+}", quizHandler.ListByUser).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.GetQuiz).Methods(http.MethodGet)
	r.HandleFunc("/attempts/getAttemptsByUserId/{id:[0-9]+}", attemptHandler.ListByUser).Methods(http.MethodGet)
	r.HandleFunc("/attempts/getAttemptsByQuizId/{id:[0-9]+}", attemptHandler.ListByQuiz).Methods(http.MethodGet)
	r.HandleFunc("/attempts/summaryByUserId/{id:[0-9]+}", attemptHandler.SummaryByUser).Methods(http.MethodGet)

	// Protected endpoints
	protected := r.NewRoute().Subrouter()
	protected.Use(RequireAuth(authSvc))
	protected.HandleFunc("/auth/verifyLogin", authHandler.VerifyLogin).Methods(http.MethodGet)
	protected.HandleFunc("/quizzes/createQuiz", quizHandler.CreateQuiz).Methods(http.MethodPost)
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.UpdateQuiz).Methods(http.MethodPut)
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.DeleteQuiz).Methods(http.MethodDelete)
	protected.HandleFunc("/attempts/create-attempt", attemptHandler.CreateAttempt).Methods(http.MethodPost)

	return r
}

// SetupJobBoardRoutes wires the job board API. Mail goes through SMTP when it is
// configured and to the log otherwise.
func SetupJobBoardRoutes(cfg *config.Config, version, buildTime string, d *db.DB) *mux.Router {
	return setupJobBoardRoutes(cfg, version, buildTime, d, mailer.New(cfg.SMTP, logger))
}

func setupJobBoardRoutes(cfg *config.Config, version, buildTime string, d *db.DB, mail mailer.Sender) *mux.Router {
	r := newRouter(cfg, "jobboard", version, buildTime)

	repo := sqlite.New(d, logger)
	authSvc := newAuthService(cfg, repo)
	otpSvc := otp.NewService(repo, repo, mail, cfg.OTPTTL, logger)

	authHandler := NewAuthHandler(authSvc)
	otpHandler := NewOTPHandler(otpSvc)
	profileHandler := NewProfileHandler(repo)
	companyHandler := NewCompanyHandler(repo)
	jobHandler := NewJobHandler(repo, repo)
	appHandler := NewApplicationHandler(repo, repo, mail, mailer.NewComposer(cfg.FrontendURL), cfg.PublicBaseURL, cfg.MaxResumeBytes)

	// Open endpoints
	r.HandleFunc("/register", authHandler.RegisterAccount).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/send-otp", otpHandler.SendOTP).Methods(http.MethodPost)
	r.HandleFunc("/verify-otp", otpHandler.VerifyOTP).Methods(http.MethodPost)
	r.HandleFunc("/jobs", jobHandler.ListJobs).Methods(http.MethodGet)
	r.HandleFunc("/getJobDetils", jobHandler.GetJob).Methods(http.MethodPost)

	// Protected endpoints
	protected := r.NewRoute().Subrouter()
	protected.Use(RequireAuth(authSvc))
	protected.HandleFunc("/verify-login", authHandler.VerifyLogin).Methods(http.MethodGet)

	protected.HandleFunc("/candidate/profile", profileHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/candidate/profile", profileHandler.SaveProfile).Methods(http.MethodPost)

	protected.HandleFunc("/addCompany", companyHandler.AddCompany).Methods(http.MethodPost)
	protected.HandleFunc("/getCompanyDetails", companyHandler.GetCompany).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/updateCompany", companyHandler.UpdateCompany).Methods(http.MethodPut)

	protected.HandleFunc("/CreateNewJob", jobHandler.CreateJob).Methods(http.MethodPost)
	protected.HandleFunc("/getEmployerJobs", jobHandler.ListEmployerJobs).Methods(http.MethodPost)
	protected.HandleFunc("/DeleteJob", jobHandler.DeleteJob).Methods(http.MethodPost)
	protected.HandleFunc("/EditJob", jobHandler.EditJob).Methods(http.MethodPost)

	protected.HandleFunc("/postApplication", appHandler.PostApplication).Methods(http.MethodPost)
	protected.HandleFunc("/getEmployeerApplications", appHandler.ListJobApplications).Methods(http.MethodPost)
	protected.HandleFunc("/getCandidateApplications", appHandler.ListCandidateApplications).Methods(http.MethodPost)
	protected.HandleFunc("/downloadResume/{applicationId:[0-9]+}", appHandler.DownloadResume).Methods(http.MethodGet)
	protected.HandleFunc("/updateApplicationStatus", appHandler.UpdateStatus).Methods(http.MethodPut)

	return r
}
