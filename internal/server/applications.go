package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"placementdesk/internal/export"
	"placementdesk/internal/filter"
	"placementdesk/internal/review"
	"placementdesk/internal/utils"
	"placementdesk/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.applications.Applications(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list job applications")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to fetch job applications.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"jobApplications": applications})
}

func (s *Service) handleApplicationDetail(w http.ResponseWriter, r *http.Request) {
	reg := flow.Param(r.Context(), "reg")

	application, err := s.applications.ApplicationByReg(r.Context(), reg)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Job application not found.")
			return
		}
		s.logger.WithError(err).WithField("reg", reg).Error("failed to fetch job application")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to fetch job application.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"jobApplication": application})
}

// handleUpdateApplication is the partial-update endpoint: a JSON subset of
// fields, a verificationUpdates map, or a multipart payload carrying proof
// documents. Whatever the encoding, only the named fields are written, and
// the response carries the full stored record.
func (s *Service) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")
	ctx := r.Context()

	application, err := s.applications.ApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Job application not found.")
			return
		}
		s.logger.WithError(err).WithField("application_id", id).Error("failed to fetch job application")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to fetch job application.")
		return
	}

	// changes maps column -> confirmed value, built by applying each
	// submitted field to the loaded record through its descriptor.
	changes := make(map[string]any)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = s.collectMultipartChanges(r, application, changes)
	} else {
		err = s.collectJSONChanges(r, application, changes)
	}
	if err != nil {
		s.respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.applications.UpdateApplicationFields(ctx, id, changes); err != nil {
		s.logger.WithError(err).WithField("application_id", id).Error("failed to update job application")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to save changes.")
		return
	}

	updated, err := s.applications.ApplicationByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("application_id", id).Error("failed to reload job application")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to reload job application.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"jobApplication": updated})
}

func (s *Service) collectJSONChanges(r *http.Request, application *types.JobApplication, changes map[string]any) error {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return fmt.Errorf("invalid update payload")
	}

	if raw, ok := payload["verificationUpdates"]; ok {
		var updates map[string]types.Verification
		if err := json.Unmarshal(raw, &updates); err != nil {
			return fmt.Errorf("invalid verificationUpdates payload")
		}
		return applyVerificationUpdates(application, updates, reviewerFromContext(r.Context()), changes)
	}

	for field, raw := range payload {
		if err := applyScalarChange(application, field, rawToString(raw), changes); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) collectMultipartChanges(r *http.Request, application *types.JobApplication, changes map[string]any) error {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return fmt.Errorf("invalid multipart payload")
	}

	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		descriptor, ok := review.Lookup(field)
		if !ok || descriptor.Kind != review.KindProof {
			return fmt.Errorf("field %s does not accept a document upload", field)
		}

		file, err := header.Open()
		if err != nil {
			return fmt.Errorf("failed to read uploaded document for %s", field)
		}

		key := fmt.Sprintf("%s/%s/%s%s", application.ID, descriptor.Column, utils.NanoIDSize(10), path.Ext(header.Filename))
		url, err := s.proofs.Upload(r.Context(), key, file, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			s.logger.WithError(err).WithField("field", field).Error("proof upload failed")
			return fmt.Errorf("failed to store uploaded document for %s", field)
		}

		// A fresh document always starts unverified.
		descriptor.SetProof(application, &types.ProofDocument{URL: url})
		changes[descriptor.Column] = descriptor.Get(application)
	}

	for field, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		if err := applyScalarChange(application, field, values[0], changes); err != nil {
			return err
		}
	}
	return nil
}

func applyScalarChange(application *types.JobApplication, field, raw string, changes map[string]any) error {
	descriptor, ok := review.Lookup(field)
	if !ok {
		return fmt.Errorf("unknown or immutable field %q", field)
	}
	if descriptor.Apply == nil {
		return fmt.Errorf("field %s takes a document upload, not a value", field)
	}
	if err := descriptor.Apply(application, raw); err != nil {
		return err
	}
	changes[descriptor.Column] = descriptor.Get(application)
	return nil
}

func applyVerificationUpdates(application *types.JobApplication, updates map[string]types.Verification, reviewer string, changes map[string]any) error {
	for field, verification := range updates {
		descriptor, ok := review.Lookup(field)
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		if verification.IsVerified && verification.VerifiedBy == "" {
			verification.VerifiedBy = reviewer
		}
		if err := descriptor.SetVerification(application, verification); err != nil {
			return fmt.Errorf("cannot verify %s: %w", field, err)
		}
		changes[descriptor.Column] = descriptor.Get(application)
	}
	return nil
}

// rawToString renders a JSON scalar the way the field parsers expect: quoted
// strings unwrapped, numbers as their literal text, null as empty.
func rawToString(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

func (s *Service) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	criteria, err := filter.FromQuery(r.URL.Query())
	if err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid filter parameters.")
		return
	}

	applications, err := s.applications.Applications(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list job applications for export")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to export job applications.")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.FileName))

	if err := export.WriteCSV(w, filter.Apply(applications, criteria)); err != nil {
		s.logger.WithError(err).Error("failed to stream csv export")
	}
}
