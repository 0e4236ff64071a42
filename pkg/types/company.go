package types

import "time"

const CompanyStatusActive = "Active"

// EligibilityCriteria holds the admission thresholds for a posting. A nil
// member means no threshold on that axis.
type EligibilityCriteria struct {
	MinCGPA     *float64 `json:"minCGPA,omitempty"`
	MinHSCMarks *float64 `json:"minHSCMarks,omitempty"`
	MinSSCMarks *float64 `json:"minSSCMarks,omitempty"`
	MaxGapYears *int     `json:"maxGapYears,omitempty"`
	MaxBacklogs *int     `json:"maxBacklogs,omitempty"`
}

type Company struct {
	ID string `db:"id" json:"id"`

	JobTitle       string `db:"job_title" json:"jobTitle"`
	JobDescription string `db:"job_description" json:"jobDescription"`
	CompanyName    string `db:"company_name" json:"companyName"`
	Location       string `db:"location" json:"location"`
	SalaryRange    string `db:"salary_range" json:"salaryRange"`
	Duration       string `db:"duration" json:"duration"`
	Status         string `db:"status" json:"status"`
	JobRole        string `db:"job_role" json:"jobRole"`

	TechStacks          []string             `db:"tech_stacks" json:"techStacks"`
	EligibilityCriteria *EligibilityCriteria `db:"eligibility_criteria" json:"eligibilityCriteria,omitempty"`

	ApplicationDeadline time.Time `db:"application_deadline" json:"applicationDeadline"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateCompany is the full payload accepted by the posting update endpoint.
type UpdateCompany struct {
	JobTitle            string               `json:"jobTitle" form:"jobTitle"`
	JobDescription      string               `json:"jobDescription" form:"jobDescription"`
	CompanyName         string               `json:"companyName" form:"companyName"`
	Location            string               `json:"location" form:"location"`
	SalaryRange         string               `json:"salaryRange" form:"salaryRange"`
	Duration            string               `json:"duration" form:"duration"`
	Status              string               `json:"status" form:"status"`
	JobRole             string               `json:"jobRole" form:"jobRole"`
	TechStacks          []string             `json:"techStacks" form:"techStacks"`
	ApplicationDeadline string               `json:"applicationDeadline" form:"applicationDeadline"`
	EligibilityCriteria *EligibilityCriteria `json:"eligibilityCriteria"`
}
