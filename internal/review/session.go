package review

import (
	"context"
	"fmt"
	"io"

	"placementdesk/internal/export"
	"placementdesk/internal/filter"
	"placementdesk/pkg/types"

	"github.com/sirupsen/logrus"
)

// Backend is the collaborator contract the review session runs against. The
// HTTP client in internal/client implements it for a remote service; tests
// substitute a fake. Every update returns the full stored record: the backend
// is the source of truth for the merged shape, never the client-computed
// delta.
type Backend interface {
	ListApplications(ctx context.Context) ([]*types.JobApplication, error)
	ApplicationByReg(ctx context.Context, reg string) (*types.JobApplication, error)
	UpdateField(ctx context.Context, id, field, value string) (*types.JobApplication, error)
	UploadProof(ctx context.Context, id, field, fileName, contentType string, file io.Reader) (*types.JobApplication, error)
	UpdateVerification(ctx context.Context, id string, updates map[string]types.Verification) (*types.JobApplication, error)

	Companies(ctx context.Context) ([]*types.Company, error)
	Company(ctx context.Context, id string) (*types.Company, error)
	UpdateCompany(ctx context.Context, id string, payload *types.UpdateCompany) error
	DeleteCompany(ctx context.Context, id string) error

	SendCorrectionEmail(ctx context.Context, email, message string) error
	SendBulkEmail(ctx context.Context, recipients []string, subject, message string) (string, error)
}

// Session drives one reviewer's pass over the record set: it mirrors the
// loaded applications and postings, keeps the filtered view current, tracks
// per-record edit state, and dispatches field-level updates. All mutations
// are pessimistic: the mirror changes only after the backend confirms, and a
// failed call leaves every piece of local state exactly as it was.
type Session struct {
	backend Backend
	logger  logrus.FieldLogger

	store   *Store
	editors map[string]*Editor

	criteria filter.Criteria
	filtered []*types.JobApplication

	companies []*types.Company
}

func NewSession(backend Backend, logger logrus.FieldLogger) *Session {
	return &Session{
		backend: backend,
		logger:  logger,
		store:   NewStore(),
		editors: make(map[string]*Editor),
	}
}

// Load replaces the application mirror with a fresh fetch and rederives the
// filtered view.
func (s *Session) Load(ctx context.Context) error {
	applications, err := s.backend.ListApplications(ctx)
	if err != nil {
		return fmt.Errorf("load applications: %w", err)
	}

	s.store.Load(applications)
	s.editors = make(map[string]*Editor)
	s.refilter()
	return nil
}

// LoadOne fetches a single application by registration code and merges it
// into the mirror, for deep links into a record detail view.
func (s *Session) LoadOne(ctx context.Context, reg string) (*types.JobApplication, error) {
	application, err := s.backend.ApplicationByReg(ctx, reg)
	if err != nil {
		return nil, err
	}

	if !s.store.Replace(application) {
		s.store.Load(append(s.store.Records(), application))
	}
	s.refilter()
	return application, nil
}

func (s *Session) LoadCompanies(ctx context.Context) error {
	companies, err := s.backend.Companies(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}
	s.companies = companies
	return nil
}

func (s *Session) Records() []*types.JobApplication {
	return s.store.Records()
}

// Filtered returns the subset passing the active criteria.
func (s *Session) Filtered() []*types.JobApplication {
	out := make([]*types.JobApplication, len(s.filtered))
	copy(out, s.filtered)
	return out
}

func (s *Session) Companies() []*types.Company {
	out := make([]*types.Company, len(s.companies))
	copy(out, s.companies)
	return out
}

func (s *Session) Get(id string) (*types.JobApplication, bool) {
	return s.store.Get(id)
}

func (s *Session) GetByReg(reg string) (*types.JobApplication, bool) {
	return s.store.GetByReg(reg)
}

func (s *Session) SetCriteria(criteria filter.Criteria) {
	s.criteria = criteria
	s.refilter()
}

func (s *Session) Criteria() filter.Criteria {
	return s.criteria
}

// ApplyEligibility seeds the filter from a posting's admission thresholds,
// the "view eligible applicants" action on a company card.
func (s *Session) ApplyEligibility(ctx context.Context, companyID string) error {
	company, err := s.backend.Company(ctx, companyID)
	if err != nil {
		return err
	}
	s.SetCriteria(filter.FromEligibility(company.EligibilityCriteria, company.JobRole))
	return nil
}

func (s *Session) refilter() {
	s.filtered = filter.Apply(s.store.Records(), s.criteria)
}

// Editor returns the edit-state tracker scoped to one record view.
func (s *Session) Editor(id string) *Editor {
	editor, ok := s.editors[id]
	if !ok {
		editor = NewEditor()
		s.editors[id] = editor
	}
	return editor
}

// BeginEdit opens a field for editing, snapshotting its current value.
func (s *Session) BeginEdit(id, field string) error {
	descriptor, ok := Lookup(field)
	if !ok {
		return types.ErrUnknownField
	}

	record, ok := s.store.Get(id)
	if !ok {
		return types.ErrApplicationNotFound
	}

	s.Editor(id).BeginEdit(field, descriptor.FormatValue(record))
	return nil
}

func (s *Session) SetDraft(id, field, value string) error {
	return s.Editor(id).SetDraft(field, value)
}

// CancelEdit closes the field, discarding the draft.
func (s *Session) CancelEdit(id, field string) {
	s.Editor(id).CancelEdit(field)
}

// SaveField commits the field's draft through the backend. On success the
// edit flag clears; on failure the field stays open so the reviewer can
// retry.
func (s *Session) SaveField(ctx context.Context, id, field string) error {
	editor := s.Editor(id)

	draft, err := editor.beginSave(field)
	if err != nil {
		return err
	}

	if err := s.UpdateField(ctx, id, field, draft); err != nil {
		editor.finishSave(field, false)
		return err
	}

	editor.finishSave(field, true)
	return nil
}

// UpdateField issues a single-field partial update and, on confirmation,
// applies the server's copy of the record to both the full mirror and the
// filtered view. The confirmed value may differ from the one sent; the
// server's normalization wins.
func (s *Session) UpdateField(ctx context.Context, id, field, value string) error {
	descriptor, ok := Lookup(field)
	if !ok {
		return types.ErrUnknownField
	}
	if descriptor.Apply == nil {
		return fmt.Errorf("field %s takes a document upload, not a value", field)
	}

	confirmed, err := s.backend.UpdateField(ctx, id, field, value)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"application_id": id,
			"field":          field,
		}).Error("field update rejected")
		return err
	}

	s.store.Replace(confirmed)
	s.refilter()
	return nil
}

// UploadProof replaces a proof slot with a new document via a multipart
// update.
func (s *Session) UploadProof(ctx context.Context, id, field, fileName, contentType string, file io.Reader) error {
	descriptor, ok := Lookup(field)
	if !ok {
		return types.ErrUnknownField
	}
	if descriptor.Kind != KindProof {
		return fmt.Errorf("field %s does not take a document upload", field)
	}

	confirmed, err := s.backend.UploadProof(ctx, id, field, fileName, contentType, file)
	if err != nil {
		return err
	}

	s.store.Replace(confirmed)
	s.refilter()
	return nil
}

// ToggleVerification flips the field's verified flag, recording the reviewer
// who signed it off. A field without a proof document is not verifiable. The
// partial update carries only the verification map; the mirror takes the full
// corrected record the backend returns.
func (s *Session) ToggleVerification(ctx context.Context, id, field, reviewer string) error {
	descriptor, ok := Lookup(field)
	if !ok {
		return types.ErrUnknownField
	}
	if !descriptor.Verifiable {
		return types.ErrFieldNotVerifiable
	}

	record, ok := s.store.Get(id)
	if !ok {
		return types.ErrApplicationNotFound
	}

	if descriptor.Proof(record) == nil {
		return types.ErrNoProofDocument
	}

	verified := false
	if verification := descriptor.Verification(record); verification != nil {
		verified = verification.IsVerified
	}

	updates := map[string]types.Verification{
		field: {IsVerified: !verified, VerifiedBy: reviewer},
	}

	confirmed, err := s.backend.UpdateVerification(ctx, id, updates)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"application_id": id,
			"field":          field,
		}).Error("verification update rejected")
		return err
	}

	s.store.Replace(confirmed)
	s.refilter()
	return nil
}

// DeleteCompany removes the posting from the backend and, on success, from
// the local mirror.
func (s *Session) DeleteCompany(ctx context.Context, id string) error {
	if err := s.backend.DeleteCompany(ctx, id); err != nil {
		return err
	}

	companies := make([]*types.Company, 0, len(s.companies))
	for _, company := range s.companies {
		if company.ID == id {
			continue
		}
		companies = append(companies, company)
	}
	s.companies = companies
	return nil
}

// SendCorrection mails a correction note to one applicant.
func (s *Session) SendCorrection(ctx context.Context, id, message string) error {
	record, ok := s.store.Get(id)
	if !ok {
		return types.ErrApplicationNotFound
	}
	return s.backend.SendCorrectionEmail(ctx, record.Email, message)
}

// SendBulkEmail sends one message to every address in the filtered view as a
// single outbound request.
func (s *Session) SendBulkEmail(ctx context.Context, subject, message string) (string, error) {
	return s.backend.SendBulkEmail(ctx, export.Recipients(s.filtered), subject, message)
}

// WriteCSV streams the filtered view as the fixed-column CSV projection.
func (s *Session) WriteCSV(w io.Writer) error {
	return export.WriteCSV(w, s.filtered)
}
