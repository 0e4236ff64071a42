package review

import (
	"errors"
	"testing"

	"placementdesk/pkg/types"
)

func sampleRecords() []*types.JobApplication {
	return []*types.JobApplication{
		{
			ID:       "app-1",
			Reg:      "REG2024-001",
			FullName: "Ananya Sharma",
			Email:    "ananya@example.com",
			CGPA:     8.5,
			HSC:      88,
			SSC:      91,
			Branch:   "Computer Science",
			Status:   types.StatusPending,
			Placed:   types.PlacedNo,
		},
		{
			ID:       "app-2",
			Reg:      "REG2024-002",
			FullName: "Rohan Verma",
			Email:    "rohan@example.com",
			CGPA:     9.1,
			HSC:      93,
			SSC:      89,
			Branch:   "Information Technology",
			Status:   types.StatusAccepted,
			Placed:   types.PlacedYes,
		},
	}
}

func TestStoreApplyFieldChangeKeepsOtherFields(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())

	if err := store.ApplyFieldChange("app-1", "cgpa", "9.2"); err != nil {
		t.Fatalf("ApplyFieldChange cgpa: %v", err)
	}
	if err := store.ApplyFieldChange("app-1", "branch", "Electronics"); err != nil {
		t.Fatalf("ApplyFieldChange branch: %v", err)
	}

	record, ok := store.Get("app-1")
	if !ok {
		t.Fatal("record app-1 missing after updates")
	}
	if record.CGPA != 9.2 {
		t.Fatalf("second change clobbered first: cgpa %v", record.CGPA)
	}
	if record.Branch != "Electronics" {
		t.Fatalf("expected branch Electronics, got %q", record.Branch)
	}
	if record.FullName != "Ananya Sharma" || record.Email != "ananya@example.com" {
		t.Fatal("untouched fields changed")
	}
}

func TestStoreReplacePreservesOtherIdentities(t *testing.T) {
	records := sampleRecords()
	store := NewStore()
	store.Load(records)

	before := store.Records()

	updated := records[0].Clone()
	updated.Status = types.StatusAccepted
	if !store.Replace(updated) {
		t.Fatal("Replace returned false for mirrored record")
	}

	after := store.Records()
	if after[0] == before[0] {
		t.Fatal("expected a fresh pointer for the replaced record")
	}
	if after[1] != before[1] {
		t.Fatal("replacing one record changed another record's identity")
	}
	if after[0].Status != types.StatusAccepted {
		t.Fatalf("expected replaced status, got %q", after[0].Status)
	}
}

func TestStoreRejectsUnknownAndImmutableFields(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())

	if err := store.ApplyFieldChange("app-1", "reg", "REG2099-999"); !errors.Is(err, types.ErrUnknownField) {
		t.Fatalf("expected registration code to be unknown to the editor, got %v", err)
	}
	if err := store.ApplyFieldChange("app-1", "favoriteColor", "blue"); !errors.Is(err, types.ErrUnknownField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if err := store.ApplyFieldChange("app-1", "cgpaProof", "whatever"); !errors.Is(err, types.ErrFieldImmutable) {
		t.Fatalf("expected proof slot to refuse scalar writes, got %v", err)
	}
	if err := store.ApplyFieldChange("missing", "cgpa", "9"); !errors.Is(err, types.ErrApplicationNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStoreApplyFieldChangeValidation(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())

	if err := store.ApplyFieldChange("app-1", "cgpa", "11"); err == nil {
		t.Fatal("expected cgpa above 10 to be rejected")
	}
	if err := store.ApplyFieldChange("app-1", "hsc", "-3"); err == nil {
		t.Fatal("expected negative marks to be rejected")
	}

	record, _ := store.Get("app-1")
	if record.CGPA != 8.5 || record.HSC != 88 {
		t.Fatal("rejected change leaked into the mirror")
	}
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())

	store.Remove("app-1")
	if store.Len() != 1 {
		t.Fatalf("expected 1 record after removal, got %d", store.Len())
	}
	if _, ok := store.Get("app-1"); ok {
		t.Fatal("removed record still resolvable")
	}
	if _, ok := store.Get("app-2"); !ok {
		t.Fatal("surviving record lost after reindex")
	}
}
