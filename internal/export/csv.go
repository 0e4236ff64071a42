package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"placementdesk/pkg/types"
)

// FileName is the download name for the tabular projection.
const FileName = "job_applications.csv"

// Header is the fixed column order of the projection; it never varies with
// the input record shape.
var Header = []string{
	"Full Name",
	"Registration Number",
	"CGPA",
	"HSC Marks",
	"SSC Marks",
	"Department",
	"Status",
	"Placed",
	"Package",
	"Email",
}

// WriteCSV serializes the filtered view. Missing values become empty cells,
// not placeholders.
func WriteCSV(w io.Writer, applications []*types.JobApplication) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, application := range applications {
		row := []string{
			application.FullName,
			application.Reg,
			formatFloat(application.CGPA),
			formatFloat(application.HSC),
			formatFloat(application.SSC),
			application.Branch,
			string(application.Status),
			string(application.Placed),
			formatOptionalFloat(application.Amount),
			application.Email,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", application.Reg, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Recipients projects the filtered view into a destination address list for
// the batch email action. Records without an address are skipped.
func Recipients(applications []*types.JobApplication) []string {
	recipients := make([]string, 0, len(applications))
	for _, application := range applications {
		if application.Email == "" {
			continue
		}
		recipients = append(recipients, application.Email)
	}
	return recipients
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
