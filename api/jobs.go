package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

var errJobNotFound = apperr.NotFound("Job not found")

type JobHandler struct {
	jobs      repository.JobRepo
	companies repository.CompanyRepo
}

func NewJobHandler(jr repository.JobRepo, cr repository.CompanyRepo) *JobHandler {
	return &JobHandler{jobs: jr, companies: cr}
}

type jobForm struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	Category     string `json:"category"`
	JobType      string `json:"job_type"`
	Location     string `json:"location"`
	SalaryRange  string `json:"salary_range"`
	ExpiresAt    string `json:"expires_at" validate:"omitempty,datetime=2006-01-02"`
}

type createJobRequest struct {
	Job jobForm `json:"jobDetails"`
}

type editJobRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	jobForm
}

type jobIDRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (f jobForm) apply(j *models.Job) {
	j.Title = strings.TrimSpace(f.Title)
	j.Description = f.Description
	j.Requirements = f.Requirements
	j.Category = f.Category
	j.JobType = f.JobType
	j.Location = f.Location
	j.SalaryRange = f.SalaryRange
	j.ExpiresAt = f.ExpiresAt
}

// CreateJob posts a job for the caller. The caller must have a company profile.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.companies.GetCompanyByOwner(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("get company", err))
		return
	}
	if c == nil {
		writeError(w, r, apperr.Validation("please fill company profile first"))
		return
	}

	j := &models.Job{OwnerID: caller}
	req.Job.apply(j)
	id, err := h.jobs.CreateJob(r.Context(), j)
	if err != nil {
		writeError(w, r, apperr.Internal("create job", err))
		return
	}

	logger.Info("job created", slog.Int64("job_id", id), slog.Int64("owner_id", caller))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Job created", ID: id})
}

func (h *JobHandler) ListEmployerJobs(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jobs, err := h.jobs.ListJobsByOwner(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("list employer jobs", err))
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListOpenJobs(r.Context())
	if err != nil {
		writeError(w, r, apperr.Internal("list jobs", err))
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	var req jobIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.openJob(r, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, j)
}

func (h *JobHandler) EditJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req editJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.openJob(r, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureOwner(j.OwnerID, caller); err != nil {
		writeError(w, r, err)
		return
	}

	req.jobForm.apply(j)
	if err := h.jobs.UpdateJob(r.Context(), j); err != nil {
		writeError(w, r, apperr.Internal("update job", err))
		return
	}

	writeJSON(w, http.StatusOK, j)
}

// DeleteJob hides the job. Its applications stay readable by both parties.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req jobIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.openJob(r, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ensureOwner(j.OwnerID, caller); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.jobs.SoftDeleteJob(r.Context(), j.ID); err != nil {
		writeError(w, r, apperr.Internal("delete job", err))
		return
	}

	logger.Info("job deleted", slog.Int64("job_id", j.ID), slog.Int64("owner_id", caller))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Job deleted", ID: j.ID})
}

// openJob loads a job that exists and is not soft deleted.
func (h *JobHandler) openJob(r *http.Request, id int64) (*models.Job, error) {
	j, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		return nil, apperr.Internal("get job", err)
	}
	if j == nil || j.IsDeleted {
		return nil, errJobNotFound
	}

	return j, nil
}
