package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"placementdesk/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.Companies(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list companies")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to fetch companies.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (s *Service) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	company, err := s.companies.CompanyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrCompanyNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Company not found.")
			return
		}
		s.logger.WithError(err).WithField("company_id", id).Error("failed to fetch company")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to fetch company.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"company": company})
}

// handleUpdateCompany takes the full posting payload, including the nested
// eligibility object.
func (s *Service) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")
	ctx := r.Context()

	var payload types.UpdateCompany
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondOutcome(w, http.StatusBadRequest, false, "Invalid company payload.")
		return
	}

	company, err := s.companies.CompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrCompanyNotFound) {
			s.respondOutcome(w, http.StatusNotFound, false, "Company not found.")
			return
		}
		s.logger.WithError(err).WithField("company_id", id).Error("failed to fetch company")
		s.respondOutcome(w, http.StatusInternalServerError, false, "Failed to fetch company.")
		return
	}

	company.JobTitle = payload.JobTitle
	company.JobDescription = payload.JobDescription
	company.CompanyName = payload.CompanyName
	company.Location = payload.Location
	company.SalaryRange = payload.SalaryRange
	company.Duration = payload.Duration
	company.JobRole = payload.JobRole
	company.TechStacks = payload.TechStacks
	company.EligibilityCriteria = payload.EligibilityCriteria
	if payload.Status != "" {
		company.Status = payload.Status
	}
	if payload.ApplicationDeadline != "" {
		deadline, err := time.Parse("2006-01-02", payload.ApplicationDeadline)
		if err != nil {
			s.respondOutcome(w, http.StatusBadRequest, false, "Invalid application deadline.")
			return
		}
		company.ApplicationDeadline = deadline
	}
	if company.Location == "" {
		company.Location = "remote"
	}

	if err := s.companies.UpdateCompany(ctx, id, company); err != nil {
		s.logger.WithError(err).WithField("company_id", id).Error("failed to update company")
		s.respondOutcome(w, http.StatusInternalServerError, false, "Failed to update the company.")
		return
	}

	s.respondOutcome(w, http.StatusOK, true, "Company updated successfully.")
}

func (s *Service) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	if err := s.companies.DeleteCompany(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrCompanyNotFound) {
			s.respondOutcome(w, http.StatusNotFound, false, "Company not found.")
			return
		}
		s.logger.WithError(err).WithField("company_id", id).Error("failed to delete company")
		s.respondOutcome(w, http.StatusInternalServerError, false, "Failed to delete the company.")
		return
	}

	s.respondOutcome(w, http.StatusOK, true, "Company deleted successfully.")
}
