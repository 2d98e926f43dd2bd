package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/auth"
	"github.com/garnizeh/boards/internal/mailer"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
	"github.com/google/uuid"
)

// multipartOverhead is the room left for form fields next to the resume itself.
const multipartOverhead = 1 << 20

var (
	errApplicationNotFound = apperr.NotFound("Application not found")
	errAlreadyApplied      = apperr.Conflict("You have already applied for this job")
)

type ApplicationHandler struct {
	apps          repository.ApplicationRepo
	jobs          repository.JobRepo
	mail          mailer.Sender
	compose       *mailer.Composer
	publicBaseURL string
	maxResume     int64
}

func NewApplicationHandler(ar repository.ApplicationRepo, jr repository.JobRepo, mail mailer.Sender, compose *mailer.Composer, publicBaseURL string, maxResume int64) *ApplicationHandler {
	return &ApplicationHandler{
		apps:          ar,
		jobs:          jr,
		mail:          mail,
		compose:       compose,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxResume:     maxResume,
	}
}

type applicationForm struct {
	JobID         int64  `json:"job_id" validate:"required,gt=0"`
	PhoneNumber   string `json:"phone_number" validate:"required,max=32"`
	CoverLetter   string `json:"cover_letter"`
	PortfolioLink string `json:"portfolio_link" validate:"omitempty,url"`
	LinkedInURL   string `json:"linkedin_url" validate:"omitempty,url"`
	Source        string `json:"source"`
}

type applicationResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	Notified bool   `json:"notified"`
}

type jobApplicationsRequest struct {
	JobID int64 `json:"jobId" validate:"required,gt=0"`
}

type statusRequest struct {
	ApplicationID int64  `json:"application_id" validate:"required,gt=0"`
	Status        string `json:"application_status" validate:"required,oneof=pending reviewed shortlisted interview rejected hired"`
}

// PostApplication accepts a multipart form with a PDF resume for an open job.
func (h *ApplicationHandler) PostApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, r, auth.ErrNotLoggedIn)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxResume+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxResume + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, apperr.Validation("Request body too large"))
			return
		}
		writeError(w, r, apperr.Validation("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	form, err := readApplicationForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resume, err := h.readResume(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), form.JobID)
	if err != nil {
		writeError(w, r, apperr.Internal("get job", err))
		return
	}
	if job == nil || job.IsDeleted {
		writeError(w, r, errJobNotFound)
		return
	}

	a := &models.Application{
		JobID:          job.ID,
		CandidateID:    claims.ID,
		PhoneNumber:    form.PhoneNumber,
		CoverLetter:    form.CoverLetter,
		PortfolioLink:  form.PortfolioLink,
		LinkedInURL:    form.LinkedInURL,
		Source:         form.Source,
		Resume:         resume,
		ResumeFilename: fmt.Sprintf("resume-%d-%d-%s.pdf", claims.ID, job.ID, uuid.NewString()),
		Status:         models.StatusPending,
	}
	id, err := h.apps.CreateApplication(r.Context(), a)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, r, errAlreadyApplied)
			return
		}
		writeError(w, r, apperr.Internal("create application", err))
		return
	}

	logger.Info("application received",
		slog.Int64("application_id", id),
		slog.Int64("job_id", job.ID),
		slog.Int64("candidate_id", claims.ID),
	)

	notified := h.notify(r.Context(), func() (mailer.Email, error) {
		return h.compose.ApplicationReceived(claims.Email, claims.Name, job.Title)
	})

	writeJSON(w, http.StatusOK, applicationResponse{Message: "Application submitted", ID: id, Notified: notified})
}

func readApplicationForm(r *http.Request) (*applicationForm, error) {
	rawJobID := r.FormValue("job_id")
	if rawJobID == "" {
		rawJobID = r.FormValue("jobId")
	}
	jobID, err := strconv.ParseInt(strings.TrimSpace(rawJobID), 10, 64)
	if err != nil {
		return nil, apperr.Validation("job_id is required")
	}

	form := &applicationForm{
		JobID:         jobID,
		PhoneNumber:   strings.TrimSpace(r.FormValue("phone_number")),
		CoverLetter:   r.FormValue("cover_letter"),
		PortfolioLink: strings.TrimSpace(r.FormValue("portfolio_link")),
		LinkedInURL:   strings.TrimSpace(r.FormValue("linkedin_url")),
		Source:        r.FormValue("source"),
	}
	if err := validateStruct(form); err != nil {
		return nil, err
	}

	return form, nil
}

// readResume returns the uploaded resume bytes after checking size and content type.
// The declared content type is ignored; only the sniffed one counts.
func (h *ApplicationHandler) readResume(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("resume")
	if err != nil {
		return nil, apperr.Validation("Resume file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxResume+1))
	if err != nil {
		return nil, apperr.Internal("read resume", err)
	}
	if len(data) == 0 {
		return nil, apperr.Validation("Resume file is empty")
	}
	if int64(len(data)) > h.maxResume {
		return nil, apperr.Validation(fmt.Sprintf("Resume must be at most %d bytes", h.maxResume))
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return nil, apperr.Validation("Only PDF resumes are accepted")
	}

	return data, nil
}

// ListJobApplications returns the applications to one of the caller's jobs.
func (h *ApplicationHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req jobApplicationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), req.JobID)
	if err != nil {
		writeError(w, r, apperr.Internal("get job", err))
		return
	}
	if job == nil {
		writeError(w, r, errJobNotFound)
		return
	}
	if err := ensureOwner(job.OwnerID, caller); err != nil {
		writeError(w, r, err)
		return
	}

	apps, err := h.apps.ListApplicationsByJob(r.Context(), job.ID)
	if err != nil {
		writeError(w, r, apperr.Internal("list job applications", err))
		return
	}

	writeJSON(w, http.StatusOK, h.withResumeURLs(apps))
}

func (h *ApplicationHandler) ListCandidateApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	apps, err := h.apps.ListApplicationsByCandidate(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("list candidate applications", err))
		return
	}

	writeJSON(w, http.StatusOK, h.withResumeURLs(apps))
}

// DownloadResume streams the stored PDF to the applicant or the owner of the job.
func (h *ApplicationHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a, job, err := h.load(r, "applicationId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if a.CandidateID != caller && job.OwnerID != caller {
		writeError(w, r, apperr.Forbidden("You do not have permission to view this resume"))
		return
	}
	if len(a.Resume) == 0 {
		writeError(w, r, apperr.NotFound("Resume not found"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Resume)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": a.ResumeFilename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Resume); err != nil {
		logger.Error("write resume", slog.Int64("application_id", a.ID), slog.Any("err", err))
	}
}

// UpdateStatus changes an application's status. Only the owner of the job may do so.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.apps.GetApplication(r.Context(), req.ApplicationID)
	if err != nil {
		writeError(w, r, apperr.Internal("get application", err))
		return
	}
	if a == nil {
		writeError(w, r, errApplicationNotFound)
		return
	}
	job, err := h.jobs.GetJob(r.Context(), a.JobID)
	if err != nil {
		writeError(w, r, apperr.Internal("get job", err))
		return
	}
	if job == nil {
		writeError(w, r, errJobNotFound)
		return
	}
	if err := ensureOwner(job.OwnerID, caller); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.apps.UpdateApplicationStatus(r.Context(), a.ID, req.Status); err != nil {
		writeError(w, r, apperr.Internal("update application status", err))
		return
	}

	logger.Info("application status updated",
		slog.Int64("application_id", a.ID),
		slog.String("from", a.Status),
		slog.String("to", req.Status),
	)

	notified := h.notify(r.Context(), func() (mailer.Email, error) {
		return h.compose.StatusUpdated(a.CandidateEmail, a.CandidateName, job.Title, req.Status)
	})

	writeJSON(w, http.StatusOK, applicationResponse{Message: "Status updated", ID: a.ID, Notified: notified})
}

// load fetches the application named by the path variable and its job.
func (h *ApplicationHandler) load(r *http.Request, name string) (*models.Application, *models.Job, error) {
	id, err := pathID(r, name)
	if err != nil {
		return nil, nil, err
	}

	a, err := h.apps.GetApplication(r.Context(), id)
	if err != nil {
		return nil, nil, apperr.Internal("get application", err)
	}
	if a == nil {
		return nil, nil, errApplicationNotFound
	}

	job, err := h.jobs.GetJob(r.Context(), a.JobID)
	if err != nil {
		return nil, nil, apperr.Internal("get job", err)
	}
	if job == nil {
		return nil, nil, errJobNotFound
	}

	return a, job, nil
}

func (h *ApplicationHandler) withResumeURLs(apps []models.Application) []models.Application {
	for i := range apps {
		apps[i].ResumeURL = fmt.Sprintf("%s/downloadResume/%d", h.publicBaseURL, apps[i].ID)
	}
	return apps
}

// notify sends a notification after a committed write. A failure is logged and
// reported to the caller; the write stands.
func (h *ApplicationHandler) notify(ctx context.Context, build func() (mailer.Email, error)) bool {
	msg, err := build()
	if err != nil {
		logger.Error("compose notification", slog.Any("err", err))
		return false
	}
	if err := h.mail.Send(ctx, msg); err != nil {
		logger.Warn("send notification", slog.String("to", msg.To), slog.Any("err", err))
		return false
	}
	return true
}
