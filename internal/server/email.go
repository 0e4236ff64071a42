package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

type correctionEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type bulkEmailRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
}

func (s *Service) handleSendCorrectionEmail(w http.ResponseWriter, r *http.Request) {
	var req correctionEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid email payload.")
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		s.respondMessage(w, http.StatusBadRequest, "Email and message are required.")
		return
	}

	err := s.mailer.Send(r.Context(), []string{req.Email}, "Application Correction Required", req.Message)
	if err != nil {
		s.logger.WithError(err).WithField("recipient", req.Email).Error("failed to send correction email")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to send correction email.")
		return
	}

	s.respondJSON(w, http.StatusOK, nil)
}

// handleSendBulkEmail sends one message to the whole recipient list in a
// single exchange; delivery succeeds or fails as an aggregate.
func (s *Service) handleSendBulkEmail(w http.ResponseWriter, r *http.Request) {
	var req bulkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid email payload.")
		return
	}

	if len(req.Recipients) == 0 {
		s.respondMessage(w, http.StatusBadRequest, "At least one recipient is required.")
		return
	}

	if err := s.mailer.Send(r.Context(), req.Recipients, req.Subject, req.Message); err != nil {
		s.logger.WithError(err).WithField("recipients", len(req.Recipients)).Error("failed to send bulk email")
		s.respondMessage(w, http.StatusInternalServerError, "Failed to send emails.")
		return
	}

	s.respondMessage(w, http.StatusOK, "Emails sent successfully.")
}
