package review

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"placementdesk/internal/filter"
	"placementdesk/internal/utils"
	"placementdesk/pkg/types"

	"github.com/sirupsen/logrus"
)

// fakeBackend applies updates the way the service does: parse the value
// through the field descriptor, store the merged record, return the stored
// copy.
type fakeBackend struct {
	applications map[string]*types.JobApplication
	companies    []*types.Company

	failUpdates bool

	correctionEmails []string
	bulkRecipients   []string
	bulkSends        int
}

var errBackendDown = errors.New("backend unavailable")

func newFakeBackend(applications ...*types.JobApplication) *fakeBackend {
	backend := &fakeBackend{applications: make(map[string]*types.JobApplication)}
	for _, application := range applications {
		backend.applications[application.ID] = application.Clone()
	}
	return backend
}

func (b *fakeBackend) ListApplications(ctx context.Context) ([]*types.JobApplication, error) {
	out := make([]*types.JobApplication, 0, len(b.applications))
	for _, application := range b.applications {
		out = append(out, application.Clone())
	}
	return out, nil
}

func (b *fakeBackend) ApplicationByReg(ctx context.Context, reg string) (*types.JobApplication, error) {
	for _, application := range b.applications {
		if application.Reg == reg {
			return application.Clone(), nil
		}
	}
	return nil, types.ErrApplicationNotFound
}

func (b *fakeBackend) UpdateField(ctx context.Context, id, field, value string) (*types.JobApplication, error) {
	if b.failUpdates {
		return nil, errBackendDown
	}
	stored, ok := b.applications[id]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	descriptor, ok := Lookup(field)
	if !ok || descriptor.Apply == nil {
		return nil, types.ErrUnknownField
	}
	updated := stored.Clone()
	if err := descriptor.Apply(updated, value); err != nil {
		return nil, err
	}
	b.applications[id] = updated
	return updated.Clone(), nil
}

func (b *fakeBackend) UploadProof(ctx context.Context, id, field, fileName, contentType string, file io.Reader) (*types.JobApplication, error) {
	if b.failUpdates {
		return nil, errBackendDown
	}
	stored, ok := b.applications[id]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	descriptor, ok := Lookup(field)
	if !ok || descriptor.SetProof == nil {
		return nil, types.ErrUnknownField
	}
	if _, err := io.Copy(io.Discard, file); err != nil {
		return nil, err
	}
	updated := stored.Clone()
	descriptor.SetProof(updated, &types.ProofDocument{
		URL: fmt.Sprintf("https://proofs.example/%s/%s", id, fileName),
	})
	b.applications[id] = updated
	return updated.Clone(), nil
}

func (b *fakeBackend) UpdateVerification(ctx context.Context, id string, updates map[string]types.Verification) (*types.JobApplication, error) {
	if b.failUpdates {
		return nil, errBackendDown
	}
	stored, ok := b.applications[id]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	updated := stored.Clone()
	for field, verification := range updates {
		descriptor, ok := Lookup(field)
		if !ok {
			return nil, types.ErrUnknownField
		}
		if err := descriptor.SetVerification(updated, verification); err != nil {
			return nil, err
		}
	}
	b.applications[id] = updated
	return updated.Clone(), nil
}

func (b *fakeBackend) Companies(ctx context.Context) ([]*types.Company, error) {
	return b.companies, nil
}

func (b *fakeBackend) Company(ctx context.Context, id string) (*types.Company, error) {
	for _, company := range b.companies {
		if company.ID == id {
			return company, nil
		}
	}
	return nil, types.ErrCompanyNotFound
}

func (b *fakeBackend) UpdateCompany(ctx context.Context, id string, payload *types.UpdateCompany) error {
	return nil
}

func (b *fakeBackend) DeleteCompany(ctx context.Context, id string) error {
	if b.failUpdates {
		return errBackendDown
	}
	for i, company := range b.companies {
		if company.ID == id {
			b.companies = append(b.companies[:i], b.companies[i+1:]...)
			return nil
		}
	}
	return types.ErrCompanyNotFound
}

func (b *fakeBackend) SendCorrectionEmail(ctx context.Context, email, message string) error {
	b.correctionEmails = append(b.correctionEmails, email)
	return nil
}

func (b *fakeBackend) SendBulkEmail(ctx context.Context, recipients []string, subject, message string) (string, error) {
	b.bulkRecipients = append([]string{}, recipients...)
	b.bulkSends++
	return "Emails sent successfully.", nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestSession(t *testing.T, backend Backend) *Session {
	t.Helper()
	session := NewSession(backend, testLogger())
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return session
}

func TestSessionSaveFieldUpdatesBothViews(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	session.SetCriteria(filter.Criteria{MinCGPA: utils.Float64Ptr(9)})
	if filtered := session.Filtered(); len(filtered) != 1 || filtered[0].Reg != "REG2024-002" {
		t.Fatalf("unexpected initial filtered view: %d records", len(filtered))
	}

	if err := session.BeginEdit("app-1", "cgpa"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if draft, _ := session.Editor("app-1").Draft("cgpa"); draft != "8.5" {
		t.Fatalf("expected snapshot 8.5, got %q", draft)
	}
	if err := session.SetDraft("app-1", "cgpa", "9.3"); err != nil {
		t.Fatalf("SetDraft: %v", err)
	}
	if err := session.SaveField(ctx, "app-1", "cgpa"); err != nil {
		t.Fatalf("SaveField: %v", err)
	}

	record, ok := session.Get("app-1")
	if !ok || record.CGPA != 9.3 {
		t.Fatalf("mirror missed the confirmed update: %+v", record)
	}

	// The record now crosses the active threshold and joins the filtered view.
	filtered := session.Filtered()
	if len(filtered) != 2 {
		t.Fatalf("filtered view not rederived: %d records", len(filtered))
	}

	if phase := session.Editor("app-1").Phase("cgpa"); phase != PhaseViewing {
		t.Fatalf("expected edit flag cleared after save, got phase %d", phase)
	}
}

func TestSessionFailedSaveLeavesStateIntact(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	if err := session.BeginEdit("app-1", "branch"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := session.SetDraft("app-1", "branch", "Electronics"); err != nil {
		t.Fatalf("SetDraft: %v", err)
	}

	backend.failUpdates = true
	if err := session.SaveField(ctx, "app-1", "branch"); !errors.Is(err, errBackendDown) {
		t.Fatalf("expected backend error, got %v", err)
	}

	record, _ := session.Get("app-1")
	if record.Branch != "Computer Science" {
		t.Fatalf("failed save leaked into the mirror: %q", record.Branch)
	}
	if phase := session.Editor("app-1").Phase("branch"); phase != PhaseEditing {
		t.Fatalf("expected field still open after failed save, got phase %d", phase)
	}
	if draft, _ := session.Editor("app-1").Draft("branch"); draft != "Electronics" {
		t.Fatalf("failed save lost the draft: %q", draft)
	}

	backend.failUpdates = false
	if err := session.SaveField(ctx, "app-1", "branch"); err != nil {
		t.Fatalf("retry SaveField: %v", err)
	}
	record, _ = session.Get("app-1")
	if record.Branch != "Electronics" {
		t.Fatalf("retry did not commit: %q", record.Branch)
	}
}

func TestSessionServerCopyWins(t *testing.T) {
	records := sampleRecords()
	backend := newFakeBackend(records...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	// The backend normalizes "9.30" to 9.3; the mirror must show the stored
	// form, not the raw input.
	if err := session.UpdateField(ctx, "app-1", "cgpa", "9.30"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	record, _ := session.Get("app-1")
	if record.CGPA != 9.3 {
		t.Fatalf("expected server-normalized 9.3, got %v", record.CGPA)
	}
	if record.FullName != "Ananya Sharma" {
		t.Fatal("server copy dropped unrelated fields")
	}
}

func TestSessionToggleVerification(t *testing.T) {
	record := sampleRecords()[0]
	record.CGPAProof = &types.ProofDocument{URL: "https://proofs.example/app-1/cgpa.pdf"}
	backend := newFakeBackend(record, sampleRecords()[1])
	session := newTestSession(t, backend)
	ctx := context.Background()

	// No proof on file: hsc is verifiable in principle but has nothing to
	// verify.
	if err := session.ToggleVerification(ctx, "app-1", "hscProof", "reviewer@example.com"); !errors.Is(err, types.ErrNoProofDocument) {
		t.Fatalf("expected ErrNoProofDocument, got %v", err)
	}
	if err := session.ToggleVerification(ctx, "app-1", "branch", "reviewer@example.com"); !errors.Is(err, types.ErrFieldNotVerifiable) {
		t.Fatalf("expected ErrFieldNotVerifiable, got %v", err)
	}

	if err := session.ToggleVerification(ctx, "app-1", "cgpaProof", "reviewer@example.com"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	mirrored, _ := session.Get("app-1")
	verification := mirrored.CGPAProof.Verification
	if verification == nil || !verification.IsVerified {
		t.Fatalf("expected verified after first toggle: %+v", verification)
	}
	if verification.VerifiedBy != "reviewer@example.com" {
		t.Fatalf("expected reviewer identity recorded, got %q", verification.VerifiedBy)
	}

	// Double toggle restores the unverified state.
	if err := session.ToggleVerification(ctx, "app-1", "cgpaProof", "reviewer@example.com"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	mirrored, _ = session.Get("app-1")
	if mirrored.CGPAProof.Verification.IsVerified {
		t.Fatal("expected unverified after double toggle")
	}
}

func TestSessionUploadProof(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	file := bytes.NewReader([]byte("%PDF-1.4 fake"))
	if err := session.UploadProof(ctx, "app-1", "sscProof", "marksheet.pdf", "application/pdf", file); err != nil {
		t.Fatalf("UploadProof: %v", err)
	}

	record, _ := session.Get("app-1")
	if record.SSCProof == nil || !strings.HasSuffix(record.SSCProof.URL, "marksheet.pdf") {
		t.Fatalf("proof slot not replaced: %+v", record.SSCProof)
	}
	if record.SSCProof.Verification != nil {
		t.Fatal("fresh upload must start unverified")
	}

	if err := session.UploadProof(ctx, "app-1", "branch", "x.pdf", "application/pdf", bytes.NewReader(nil)); err == nil {
		t.Fatal("expected scalar field to refuse a document upload")
	}
}

func TestSessionBulkEmailTargetsFilteredView(t *testing.T) {
	records := sampleRecords()
	records = append(records, &types.JobApplication{
		ID:     "app-3",
		Reg:    "REG2024-003",
		CGPA:   9.5,
		Branch: "Computer Science",
		// No email address on file.
	})
	backend := newFakeBackend(records...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	session.SetCriteria(filter.Criteria{MinCGPA: utils.Float64Ptr(9)})

	message, err := session.SendBulkEmail(ctx, "Placement drive", "Details inside.")
	if err != nil {
		t.Fatalf("SendBulkEmail: %v", err)
	}
	if message != "Emails sent successfully." {
		t.Fatalf("unexpected outcome message %q", message)
	}
	if backend.bulkSends != 1 {
		t.Fatalf("expected a single aggregate send, got %d", backend.bulkSends)
	}
	if len(backend.bulkRecipients) != 1 || backend.bulkRecipients[0] != "rohan@example.com" {
		t.Fatalf("unexpected recipients: %v", backend.bulkRecipients)
	}
}

func TestSessionSendCorrection(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	session := newTestSession(t, backend)
	ctx := context.Background()

	if err := session.SendCorrection(ctx, "app-1", "CGPA proof is unreadable."); err != nil {
		t.Fatalf("SendCorrection: %v", err)
	}
	if len(backend.correctionEmails) != 1 || backend.correctionEmails[0] != "ananya@example.com" {
		t.Fatalf("correction sent to wrong address: %v", backend.correctionEmails)
	}

	if err := session.SendCorrection(ctx, "missing", "hi"); !errors.Is(err, types.ErrApplicationNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSessionDeleteCompany(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	backend.companies = []*types.Company{
		{ID: "co-1", CompanyName: "Northwind Labs"},
		{ID: "co-2", CompanyName: "Meridian Devices"},
	}
	session := newTestSession(t, backend)
	ctx := context.Background()

	if err := session.LoadCompanies(ctx); err != nil {
		t.Fatalf("LoadCompanies: %v", err)
	}

	backend.failUpdates = true
	if err := session.DeleteCompany(ctx, "co-1"); err == nil {
		t.Fatal("expected delete to fail")
	}
	if len(session.Companies()) != 2 {
		t.Fatal("failed delete removed the posting locally")
	}

	backend.failUpdates = false
	if err := session.DeleteCompany(ctx, "co-1"); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	companies := session.Companies()
	if len(companies) != 1 || companies[0].ID != "co-2" {
		t.Fatalf("unexpected companies after delete: %v", companies)
	}
}

func TestSessionApplyEligibility(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	backend.companies = []*types.Company{{
		ID:      "co-1",
		JobRole: "Computer Science",
		EligibilityCriteria: &types.EligibilityCriteria{
			MinCGPA: utils.Float64Ptr(8),
		},
	}}
	session := newTestSession(t, backend)
	ctx := context.Background()

	if err := session.ApplyEligibility(ctx, "co-1"); err != nil {
		t.Fatalf("ApplyEligibility: %v", err)
	}

	filtered := session.Filtered()
	if len(filtered) != 1 || filtered[0].Reg != "REG2024-001" {
		t.Fatalf("unexpected eligible set: %d records", len(filtered))
	}
	if criteria := session.Criteria(); criteria.Branch != "Computer Science" {
		t.Fatalf("job role not seeded as branch: %+v", criteria)
	}

	if err := session.ApplyEligibility(ctx, "co-404"); !errors.Is(err, types.ErrCompanyNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSessionLoadOneMergesDeepLink(t *testing.T) {
	backend := newFakeBackend(sampleRecords()...)
	session := NewSession(backend, testLogger())
	ctx := context.Background()

	// Deep link into a detail view before any list load.
	record, err := session.LoadOne(ctx, "REG2024-001")
	if err != nil {
		t.Fatalf("LoadOne: %v", err)
	}
	if record.ID != "app-1" {
		t.Fatalf("unexpected record %q", record.ID)
	}
	if _, ok := session.GetByReg("REG2024-001"); !ok {
		t.Fatal("deep-linked record not mirrored")
	}

	if _, err := session.LoadOne(ctx, "REG2099-404"); !errors.Is(err, types.ErrApplicationNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
