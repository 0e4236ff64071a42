package review

import (
	"fmt"
	"strconv"
	"strings"

	"placementdesk/pkg/types"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindLongText
	KindDate
	KindGender
	KindDecimal
	KindInteger
	KindStatus
	KindPlacement
	KindAmount
	KindProof
)

// FieldDescriptor declares one independently editable field of a job
// application: its wire name, backing column, widget kind, whether a reviewer
// can verify it, and how to read and write it on a record. The table below is
// the single whitelist of mutable fields; the registration code is absent
// from it on purpose.
type FieldDescriptor struct {
	Name       string
	Column     string
	Kind       FieldKind
	Verifiable bool

	Get func(a *types.JobApplication) any

	// Apply parses raw form/JSON input and assigns it. Nil for proof slots,
	// which are written through SetProof instead.
	Apply func(a *types.JobApplication, raw string) error

	// Proof/SetProof are set only on proof slots.
	Proof    func(a *types.JobApplication) *types.ProofDocument
	SetProof func(a *types.JobApplication, p *types.ProofDocument)
}

var Fields = []FieldDescriptor{
	{
		Name: "fullName", Column: "full_name", Kind: KindText,
		Get:   func(a *types.JobApplication) any { return a.FullName },
		Apply: func(a *types.JobApplication, raw string) error { a.FullName = raw; return nil },
	},
	{
		Name: "email", Column: "email", Kind: KindText,
		Get: func(a *types.JobApplication) any { return a.Email },
		Apply: func(a *types.JobApplication, raw string) error {
			if !strings.Contains(raw, "@") {
				return fmt.Errorf("invalid email %q", raw)
			}
			a.Email = raw
			return nil
		},
	},
	{
		Name: "phone", Column: "phone", Kind: KindText,
		Get:   func(a *types.JobApplication) any { return a.Phone },
		Apply: func(a *types.JobApplication, raw string) error { a.Phone = raw; return nil },
	},
	{
		Name: "dob", Column: "dob", Kind: KindDate,
		Get:   func(a *types.JobApplication) any { return a.DOB },
		Apply: func(a *types.JobApplication, raw string) error { a.DOB = raw; return nil },
	},
	{
		Name: "gender", Column: "gender", Kind: KindGender,
		Get: func(a *types.JobApplication) any { return a.Gender },
		Apply: func(a *types.JobApplication, raw string) error {
			switch types.Gender(raw) {
			case types.GenderMale, types.GenderFemale, types.GenderOther:
				a.Gender = types.Gender(raw)
				return nil
			}
			return fmt.Errorf("invalid gender %q", raw)
		},
	},
	{
		Name: "address", Column: "address", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Address },
		Apply: func(a *types.JobApplication, raw string) error { a.Address = raw; return nil },
	},
	{
		Name: "cgpa", Column: "cgpa", Kind: KindDecimal,
		Get: func(a *types.JobApplication) any { return a.CGPA },
		Apply: func(a *types.JobApplication, raw string) error {
			value, err := parseScore(raw, 10)
			if err != nil {
				return err
			}
			a.CGPA = value
			return nil
		},
	},
	{
		Name: "ssc", Column: "ssc", Kind: KindDecimal,
		Get: func(a *types.JobApplication) any { return a.SSC },
		Apply: func(a *types.JobApplication, raw string) error {
			value, err := parseScore(raw, 100)
			if err != nil {
				return err
			}
			a.SSC = value
			return nil
		},
	},
	{
		Name: "hsc", Column: "hsc", Kind: KindDecimal,
		Get: func(a *types.JobApplication) any { return a.HSC },
		Apply: func(a *types.JobApplication, raw string) error {
			value, err := parseScore(raw, 100)
			if err != nil {
				return err
			}
			a.HSC = value
			return nil
		},
	},
	{
		Name: "gap_year", Column: "gap_year", Kind: KindInteger,
		Get: func(a *types.JobApplication) any { return a.GapYear },
		Apply: func(a *types.JobApplication, raw string) error {
			if strings.TrimSpace(raw) == "" {
				a.GapYear = nil
				return nil
			}
			value, err := parseCount(raw)
			if err != nil {
				return err
			}
			a.GapYear = &value
			return nil
		},
	},
	{
		Name: "backlogs", Column: "backlogs", Kind: KindInteger,
		Get: func(a *types.JobApplication) any { return a.Backlogs },
		Apply: func(a *types.JobApplication, raw string) error {
			value, err := parseCount(raw)
			if err != nil {
				return err
			}
			a.Backlogs = value
			return nil
		},
	},
	{
		Name: "branch", Column: "branch", Kind: KindText,
		Get:   func(a *types.JobApplication) any { return a.Branch },
		Apply: func(a *types.JobApplication, raw string) error { a.Branch = raw; return nil },
	},
	{
		Name: "skills", Column: "skills", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Skills },
		Apply: func(a *types.JobApplication, raw string) error { a.Skills = raw; return nil },
	},
	{
		Name: "references", Column: "refs", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Refs },
		Apply: func(a *types.JobApplication, raw string) error { a.Refs = raw; return nil },
	},
	{
		Name: "projects", Column: "projects", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Projects },
		Apply: func(a *types.JobApplication, raw string) error { a.Projects = raw; return nil },
	},
	{
		Name: "internship", Column: "internship", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Internship },
		Apply: func(a *types.JobApplication, raw string) error { a.Internship = raw; return nil },
	},
	{
		Name: "message", Column: "message", Kind: KindLongText,
		Get:   func(a *types.JobApplication) any { return a.Message },
		Apply: func(a *types.JobApplication, raw string) error { a.Message = raw; return nil },
	},
	{
		Name: "status", Column: "status", Kind: KindStatus,
		Get: func(a *types.JobApplication) any { return a.Status },
		Apply: func(a *types.JobApplication, raw string) error {
			switch types.ApplicationStatus(raw) {
			case types.StatusPending, types.StatusAccepted, types.StatusRejected:
				a.Status = types.ApplicationStatus(raw)
				return nil
			}
			return fmt.Errorf("invalid status %q", raw)
		},
	},
	{
		Name: "placed", Column: "placed", Kind: KindPlacement,
		Get: func(a *types.JobApplication) any { return a.Placed },
		Apply: func(a *types.JobApplication, raw string) error {
			switch types.PlacementStatus(raw) {
			case types.PlacedYes, types.PlacedNo:
				a.Placed = types.PlacementStatus(raw)
				return nil
			}
			return fmt.Errorf("invalid placement %q", raw)
		},
	},
	{
		Name: "amount", Column: "amount", Kind: KindAmount,
		Get: func(a *types.JobApplication) any { return a.Amount },
		Apply: func(a *types.JobApplication, raw string) error {
			if strings.TrimSpace(raw) == "" {
				a.Amount = nil
				return nil
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || value < 0 {
				return fmt.Errorf("invalid package amount %q", raw)
			}
			a.Amount = &value
			return nil
		},
	},

	proofField("cgpaProof", "cgpa_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.CGPAProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.CGPAProof = p }),
	proofField("sscProof", "ssc_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.SSCProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.SSCProof = p }),
	proofField("hscProof", "hsc_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.HSCProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.HSCProof = p }),
	proofField("internshipProof", "internship_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.InternshipProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.InternshipProof = p }),
	proofField("gap_yearProof", "gap_year_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.GapYearProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.GapYearProof = p }),
	proofField("profilePhotoProof", "profile_photo_proof",
		func(a *types.JobApplication) *types.ProofDocument { return a.ProfilePhotoProof },
		func(a *types.JobApplication, p *types.ProofDocument) { a.ProfilePhotoProof = p }),
}

var fieldsByName = func() map[string]*FieldDescriptor {
	byName := make(map[string]*FieldDescriptor, len(Fields))
	for i := range Fields {
		byName[Fields[i].Name] = &Fields[i]
	}
	return byName
}()

func proofField(name, column string,
	get func(a *types.JobApplication) *types.ProofDocument,
	set func(a *types.JobApplication, p *types.ProofDocument),
) FieldDescriptor {
	return FieldDescriptor{
		Name:       name,
		Column:     column,
		Kind:       KindProof,
		Verifiable: true,
		Get:        func(a *types.JobApplication) any { return get(a) },
		Proof:      get,
		SetProof:   set,
	}
}

// Lookup resolves a wire field name against the descriptor table.
func Lookup(name string) (*FieldDescriptor, bool) {
	descriptor, ok := fieldsByName[name]
	return descriptor, ok
}

// Verification returns the verification record attached to the field, or nil.
func (d *FieldDescriptor) Verification(a *types.JobApplication) *types.Verification {
	if !d.Verifiable || d.Proof == nil {
		return nil
	}
	proof := d.Proof(a)
	if proof == nil {
		return nil
	}
	return proof.Verification
}

// SetVerification attaches a verification record to the field. The field must
// already carry a proof document; bare scalars are not verifiable.
func (d *FieldDescriptor) SetVerification(a *types.JobApplication, v types.Verification) error {
	if !d.Verifiable || d.Proof == nil {
		return types.ErrFieldNotVerifiable
	}
	proof := d.Proof(a)
	if proof == nil {
		return types.ErrNoProofDocument
	}
	verification := v
	proof.Verification = &verification
	return nil
}

// FormatValue renders the field's current value the way it appears in an edit
// widget. Absent optional values render empty.
func (d *FieldDescriptor) FormatValue(a *types.JobApplication) string {
	switch value := d.Get(a).(type) {
	case string:
		return value
	case types.Gender:
		return string(value)
	case types.ApplicationStatus:
		return string(value)
	case types.PlacementStatus:
		return string(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case *int:
		if value == nil {
			return ""
		}
		return strconv.Itoa(*value)
	case *float64:
		if value == nil {
			return ""
		}
		return strconv.FormatFloat(*value, 'f', -1, 64)
	case *types.ProofDocument:
		if value == nil {
			return ""
		}
		return value.URL
	default:
		return fmt.Sprintf("%v", value)
	}
}

func parseScore(raw string, max float64) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q", raw)
	}
	if value < 0 || value > max {
		return 0, fmt.Errorf("score %v out of range 0-%v", value, max)
	}
	return value, nil
}

func parseCount(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return value, nil
}
