package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"placementdesk/internal/utils"
	"placementdesk/pkg/types"
)

func TestWriteCSVColumnOrderAndEmptyCells(t *testing.T) {
	applications := []*types.JobApplication{
		{
			Reg:      "REG2024-002",
			FullName: "Rohan Verma",
			Email:    "rohan@example.com",
			CGPA:     9.1,
			HSC:      93,
			SSC:      89,
			Branch:   "Information Technology",
			Status:   types.StatusAccepted,
			Placed:   types.PlacedYes,
			Amount:   utils.Float64Ptr(650000),
		},
		{
			Reg:      "REG2024-003",
			FullName: "Priya Nair",
			Email:    "priya@example.com",
			CGPA:     7.4,
			HSC:      76,
			SSC:      81,
			Branch:   "Electronics",
			Status:   types.StatusPending,
			Placed:   types.PlacedNo,
			// No package amount.
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, applications); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{
		"Full Name", "Registration Number", "CGPA", "HSC Marks", "SSC Marks",
		"Department", "Status", "Placed", "Package", "Email",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	wantFirst := []string{
		"Rohan Verma", "REG2024-002", "9.1", "93", "89",
		"Information Technology", "Accepted", "Placed", "650000", "rohan@example.com",
	}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Fatalf("unexpected first row: %v", rows[1])
	}

	if rows[2][8] != "" {
		t.Fatalf("missing package amount must be an empty cell, got %q", rows[2][8])
	}
}

func TestWriteCSVEmptyInputStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestRecipientsSkipsMissingAddresses(t *testing.T) {
	applications := []*types.JobApplication{
		{Reg: "REG2024-001", Email: "ananya@example.com"},
		{Reg: "REG2024-002"},
		{Reg: "REG2024-003", Email: "priya@example.com"},
	}

	got := Recipients(applications)
	want := []string{"ananya@example.com", "priya@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected recipients: %v", got)
	}
}
