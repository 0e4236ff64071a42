package filter

import (
	"fmt"
	"net/url"
	"strconv"

	"placementdesk/pkg/types"

	"github.com/go-playground/form/v4"
)

var decoder = form.NewDecoder()

// Criteria is the set of eligibility predicates applied to the application
// list. A nil/empty member is always true; active predicates are ANDed.
type Criteria struct {
	MinCGPA    *float64 `form:"cgpa"`
	MinHSC     *float64 `form:"hsc"`
	MinSSC     *float64 `form:"ssc"`
	MaxGapYear *int     `form:"gap_year"`
	Branch     string   `form:"branch"`
}

func (c Criteria) IsZero() bool {
	return c.MinCGPA == nil && c.MinHSC == nil && c.MinSSC == nil &&
		c.MaxGapYear == nil && c.Branch == ""
}

// Matches reports whether the application passes every active predicate.
// Minimum predicates pass on equality. A missing gap-year value passes a
// gap-year maximum: absence is not a violation. Branch comparison is
// case-sensitive exact equality.
func (c Criteria) Matches(a *types.JobApplication) bool {
	if c.MinCGPA != nil && a.CGPA < *c.MinCGPA {
		return false
	}
	if c.MinHSC != nil && a.HSC < *c.MinHSC {
		return false
	}
	if c.MinSSC != nil && a.SSC < *c.MinSSC {
		return false
	}
	if c.MaxGapYear != nil && a.GapYear != nil && *a.GapYear > *c.MaxGapYear {
		return false
	}
	if c.Branch != "" && a.Branch != c.Branch {
		return false
	}
	return true
}

// Apply derives the filtered view. The result is always a fresh slice; the
// records themselves are shared with the input.
func Apply(records []*types.JobApplication, c Criteria) []*types.JobApplication {
	filtered := make([]*types.JobApplication, 0, len(records))
	for _, record := range records {
		if c.Matches(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// FromQuery parses the deep-link query contract
// (?cgpa=&hsc=&ssc=&gap_year=&branch=) into criteria. Keys present with empty
// values count as absent, matching how the dashboard form seeds its inputs.
func FromQuery(values url.Values) (Criteria, error) {
	trimmed := make(url.Values, len(values))
	for key, entries := range values {
		for _, entry := range entries {
			if entry != "" {
				trimmed.Add(key, entry)
			}
		}
	}

	var criteria Criteria
	if err := decoder.Decode(&criteria, trimmed); err != nil {
		return Criteria{}, fmt.Errorf("parse filter query: %w", err)
	}
	return criteria, nil
}

// QueryString renders the criteria back into the deep-link contract.
func (c Criteria) QueryString() string {
	values := url.Values{}
	if c.MinCGPA != nil {
		values.Set("cgpa", strconv.FormatFloat(*c.MinCGPA, 'f', -1, 64))
	}
	if c.MinHSC != nil {
		values.Set("hsc", strconv.FormatFloat(*c.MinHSC, 'f', -1, 64))
	}
	if c.MinSSC != nil {
		values.Set("ssc", strconv.FormatFloat(*c.MinSSC, 'f', -1, 64))
	}
	if c.MaxGapYear != nil {
		values.Set("gap_year", strconv.Itoa(*c.MaxGapYear))
	}
	if c.Branch != "" {
		values.Set("branch", c.Branch)
	}
	return values.Encode()
}

// FromEligibility seeds criteria from a posting's admission thresholds, the
// mechanism behind the "eligible applicants" deep link. The posting's job
// role stands in for the branch predicate; a backlog maximum has no filter
// counterpart.
func FromEligibility(e *types.EligibilityCriteria, jobRole string) Criteria {
	criteria := Criteria{Branch: jobRole}
	if e == nil {
		return criteria
	}
	criteria.MinCGPA = e.MinCGPA
	criteria.MinHSC = e.MinHSCMarks
	criteria.MinSSC = e.MinSSCMarks
	criteria.MaxGapYear = e.MaxGapYears
	return criteria
}
