package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

var (
	errCompanyExists   = apperr.Conflict("Company profile already exists")
	errCompanyNotFound = apperr.NotFound("Company profile not found")
)

type CompanyHandler struct {
	companies repository.CompanyRepo
}

func NewCompanyHandler(cr repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{companies: cr}
}

type companyForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type companyRequest struct {
	Company companyForm `json:"companyprofile"`
}

// AddCompany creates the caller's company. An employer owns at most one.
func (h *CompanyHandler) AddCompany(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req companyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	existing, err := h.companies.GetCompanyByOwner(r.Context(), caller)
	if err != nil {
		writeError(w, r, apperr.Internal("get company", err))
		return
	}
	if existing != nil {
		writeError(w, r, errCompanyExists)
		return
	}

	c := &models.Company{
		Name:        strings.TrimSpace(req.Company.Name),
		Description: req.Company.Description,
		Website:     req.Company.Website,
		LogoURL:     req.Company.LogoURL,
		OwnerID:     caller,
	}
	if _, err := h.companies.CreateCompany(r.Context(), c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, r, errCompanyExists)
			return
		}
		writeError(w, r, apperr.Internal("create company", err))
		return
	}

	logger.Info("company created", slog.Int64("company_id", c.ID), slog.Int64("owner_id", caller))
	writeJSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.callerCompany(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.callerCompany(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req companyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c.Name = strings.TrimSpace(req.Company.Name)
	c.Description = req.Company.Description
	c.Website = req.Company.Website
	c.LogoURL = req.Company.LogoURL
	if err := h.companies.UpdateCompany(r.Context(), c); err != nil {
		writeError(w, r, apperr.Internal("update company", err))
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) callerCompany(r *http.Request) (*models.Company, error) {
	caller, err := callerID(r)
	if err != nil {
		return nil, err
	}

	c, err := h.companies.GetCompanyByOwner(r.Context(), caller)
	if err != nil {
		return nil, apperr.Internal("get company", err)
	}
	if c == nil {
		return nil, errCompanyNotFound
	}

	return c, nil
}
