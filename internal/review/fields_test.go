package review

import (
	"testing"

	"placementdesk/internal/utils"
	"placementdesk/pkg/types"
)

func TestLookupOmitsRegistrationCode(t *testing.T) {
	if _, ok := Lookup("reg"); ok {
		t.Fatal("registration code must not be an editable field")
	}
	if _, ok := Lookup("registrationNumber"); ok {
		t.Fatal("registration code must not be an editable field")
	}
}

func TestOptionalFieldsClearOnEmptyInput(t *testing.T) {
	application := &types.JobApplication{
		GapYear: utils.IntPtr(2),
		Amount:  utils.Float64Ptr(650000),
	}

	gapYear, _ := Lookup("gap_year")
	if err := gapYear.Apply(application, ""); err != nil {
		t.Fatalf("clear gap_year: %v", err)
	}
	if application.GapYear != nil {
		t.Fatal("empty input should clear gap_year")
	}

	amount, _ := Lookup("amount")
	if err := amount.Apply(application, " "); err != nil {
		t.Fatalf("clear amount: %v", err)
	}
	if application.Amount != nil {
		t.Fatal("blank input should clear amount")
	}

	if err := gapYear.Apply(application, "-1"); err == nil {
		t.Fatal("negative gap years must be rejected")
	}
}

func TestFormatValueRendersAbsentAsEmpty(t *testing.T) {
	application := &types.JobApplication{CGPA: 8.5}

	cases := map[string]string{
		"cgpa":      "8.5",
		"gap_year":  "",
		"amount":    "",
		"cgpaProof": "",
		"fullName":  "",
	}
	for field, want := range cases {
		descriptor, ok := Lookup(field)
		if !ok {
			t.Fatalf("missing descriptor %s", field)
		}
		if got := descriptor.FormatValue(application); got != want {
			t.Errorf("FormatValue(%s) = %q, want %q", field, got, want)
		}
	}

	application.GapYear = utils.IntPtr(1)
	application.CGPAProof = &types.ProofDocument{URL: "https://proofs.example/cgpa.pdf"}

	gapYear, _ := Lookup("gap_year")
	if got := gapYear.FormatValue(application); got != "1" {
		t.Errorf("FormatValue(gap_year) = %q, want 1", got)
	}
	proof, _ := Lookup("cgpaProof")
	if got := proof.FormatValue(application); got != "https://proofs.example/cgpa.pdf" {
		t.Errorf("FormatValue(cgpaProof) = %q", got)
	}
}

func TestSetVerificationRequiresProof(t *testing.T) {
	application := &types.JobApplication{}
	descriptor, _ := Lookup("sscProof")

	err := descriptor.SetVerification(application, types.Verification{IsVerified: true, VerifiedBy: "reviewer@example.com"})
	if err != types.ErrNoProofDocument {
		t.Fatalf("expected ErrNoProofDocument, got %v", err)
	}

	application.SSCProof = &types.ProofDocument{URL: "https://proofs.example/ssc.pdf"}
	if err := descriptor.SetVerification(application, types.Verification{IsVerified: true, VerifiedBy: "reviewer@example.com"}); err != nil {
		t.Fatalf("SetVerification: %v", err)
	}
	if v := descriptor.Verification(application); v == nil || !v.IsVerified || v.VerifiedBy != "reviewer@example.com" {
		t.Fatalf("verification not attached: %+v", v)
	}

	scalar, _ := Lookup("fullName")
	if err := scalar.SetVerification(application, types.Verification{}); err != types.ErrFieldNotVerifiable {
		t.Fatalf("expected ErrFieldNotVerifiable, got %v", err)
	}
}
