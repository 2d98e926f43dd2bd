package api

import (
	"net/http"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

type ProfileHandler struct {
	profiles repository.CandidateProfileRepo
}

func NewProfileHandler(pr repository.CandidateProfileRepo) *ProfileHandler {
	return &ProfileHandler{profiles: pr}
}

type profileForm struct {
	Headline     string `json:"headline" validate:"max=200"`
	Bio          string `json:"bio"`
	Skills       string `json:"skills"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	LinkedInURL  string `json:"linkedin_url" validate:"omitempty,url"`
	PortfolioURL string `json:"portfolio_url" validate:"omitempty,url"`
	GitHubURL    string `json:"github_url" validate:"omitempty,url"`
}

type profileRequest struct {
	FormData profileForm `json:"formData"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.profiles.GetCandidateProfile(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("get profile", err))
		return
	}
	if p == nil {
		writeError(w, r, apperr.NotFound("Profile not found"))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// SaveProfile creates or replaces the caller's profile.
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	f := req.FormData
	p := &models.CandidateProfile{
		UserID:       caller,
		Headline:     f.Headline,
		Bio:          f.Bio,
		Skills:       f.Skills,
		Experience:   f.Experience,
		Education:    f.Education,
		LinkedInURL:  f.LinkedInURL,
		PortfolioURL: f.PortfolioURL,
		GitHubURL:    f.GitHubURL,
	}
	if err := h.profiles.UpsertCandidateProfile(r.Context(), p); err != nil {
		writeError(w, r, apperr.Internal("save profile", err))
		return
	}

	saved, err := h.profiles.GetCandidateProfile(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("get profile", err))
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
