// file: internal/importer/importer.go
// version: 1.0.0
// guid: 41a92737-e51a-476e-b886-ac984b218029

// Package importer loads beneficiaries from CSV files.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/models"
)

// Result summarizes one import run.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ProgressFunc is called once per processed row.
type ProgressFunc func(row int)

// ImportBeneficiaries reads CSV rows and creates one beneficiary per row.
// The first row must be a header; column order is free. Recognized columns:
// name (required), national_id, phone, email, address, city, status,
// household_size, notes. Rows that fail validation are skipped and reported
// in Result.Errors; a malformed CSV aborts the run.
func ImportBeneficiaries(r io.Reader, store database.Store, orgID string, progress ProgressFunc) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := &Result{}
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if progress != nil {
			progress(rowNum)
		}

		name := field(row, "name")
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: name is empty", rowNum))
			continue
		}

		status := field(row, "status")
		if status != "" && !models.ValidBeneficiaryStatus(status) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid status %q", rowNum, status))
			continue
		}

		householdSize := 0
		if raw := field(row, "household_size"); raw != "" {
			householdSize, err = strconv.Atoi(raw)
			if err != nil || householdSize < 0 {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid household_size %q", rowNum, raw))
				continue
			}
		}

		_, err = store.CreateBeneficiary(&models.Beneficiary{
			OrgID:         orgID,
			Name:          name,
			NationalID:    field(row, "national_id"),
			Phone:         field(row, "phone"),
			Email:         field(row, "email"),
			Address:       field(row, "address"),
			City:          field(row, "city"),
			Status:        status,
			HouseholdSize: householdSize,
			Notes:         field(row, "notes"),
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}
