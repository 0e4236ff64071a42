package types

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

type PlacementStatus string

const (
	PlacedYes PlacementStatus = "Placed"
	PlacedNo  PlacementStatus = "Rejected"
)

// Verification marks reviewer sign-off on a single field.
type Verification struct {
	IsVerified bool   `json:"isVerified"`
	VerifiedBy string `json:"verifiedBy"`
}

// ProofDocument is an uploaded supporting document attached to one of the
// proof slots of an application. Verification is nil until a reviewer signs
// the slot off.
type ProofDocument struct {
	URL          string        `json:"url"`
	Verification *Verification `json:"verification,omitempty"`
}

type JobApplication struct {
	ID string `db:"id" json:"id"`

	// Reg is the human-facing registration code. It is immutable and the
	// sole external addressing key for a single application.
	Reg string `db:"reg" json:"reg"`

	FullName string `db:"full_name" json:"fullName"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone"`
	DOB      string `db:"dob" json:"dob"`
	Gender   Gender `db:"gender" json:"gender"`
	Address  string `db:"address" json:"address"`

	CGPA     float64 `db:"cgpa" json:"cgpa"`
	HSC      float64 `db:"hsc" json:"hsc"`
	SSC      float64 `db:"ssc" json:"ssc"`
	GapYear  *int    `db:"gap_year" json:"gap_year,omitempty"`
	Backlogs int     `db:"backlogs" json:"backlogs"`
	Branch   string  `db:"branch" json:"branch"`

	Skills     string `db:"skills" json:"skills"`
	Refs       string `db:"refs" json:"references"`
	Projects   string `db:"projects" json:"projects"`
	Internship string `db:"internship" json:"internship"`

	// Message is the reviewer-authored correction note shown back to the
	// candidate.
	Message string `db:"message" json:"message"`

	Status ApplicationStatus `db:"status" json:"status"`
	Placed PlacementStatus   `db:"placed" json:"placed"`
	Amount *float64          `db:"amount" json:"amount,omitempty"`

	CGPAProof         *ProofDocument `db:"cgpa_proof" json:"cgpaProof,omitempty"`
	SSCProof          *ProofDocument `db:"ssc_proof" json:"sscProof,omitempty"`
	HSCProof          *ProofDocument `db:"hsc_proof" json:"hscProof,omitempty"`
	InternshipProof   *ProofDocument `db:"internship_proof" json:"internshipProof,omitempty"`
	GapYearProof      *ProofDocument `db:"gap_year_proof" json:"gap_yearProof,omitempty"`
	ProfilePhotoProof *ProofDocument `db:"profile_photo_proof" json:"profilePhotoProof,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Clone returns a copy that shares nothing mutable with the receiver, so a
// field change on the copy never leaks into the original.
func (a *JobApplication) Clone() *JobApplication {
	if a == nil {
		return nil
	}

	out := *a

	if a.GapYear != nil {
		gap := *a.GapYear
		out.GapYear = &gap
	}
	if a.Amount != nil {
		amount := *a.Amount
		out.Amount = &amount
	}

	out.CGPAProof = a.CGPAProof.clone()
	out.SSCProof = a.SSCProof.clone()
	out.HSCProof = a.HSCProof.clone()
	out.InternshipProof = a.InternshipProof.clone()
	out.GapYearProof = a.GapYearProof.clone()
	out.ProfilePhotoProof = a.ProfilePhotoProof.clone()

	return &out
}

func (p *ProofDocument) clone() *ProofDocument {
	if p == nil {
		return nil
	}

	out := *p
	if p.Verification != nil {
		verification := *p.Verification
		out.Verification = &verification
	}
	return &out
}
