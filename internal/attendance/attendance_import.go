package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vthr/internal/shared/apperror"

	"go.uber.org/zap"
)

// ImportCSV ingests bulk attendance rows parsed from an uploaded CSV. The
// first record is the header; recognized columns are employee_id, date,
// status, in_time and out_time in any order. Bad rows are reported and
// skipped, good rows are saved, matching the row-by-row upload contract.
func (s *service) ImportCSV(ctx context.Context, records [][]string) (ImportResult, error) {
	if len(records) == 0 {
		return ImportResult{}, apperror.NewValidationFailed([]string{"CSV file is empty"})
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[normalizeHeader(name)] = i
	}
	if _, ok := cols["employee_id"]; !ok {
		return ImportResult{}, apperror.NewValidationFailed([]string{"CSV header must include employee_id"})
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := ImportResult{}
	for _, row := range records[1:] {
		req := CreateAttendanceRequest{
			EmployeeID: field(row, "employee_id"),
			Date:       field(row, "date"),
			Status:     field(row, "status"),
			InTime:     field(row, "in_time"),
			OutTime:    field(row, "out_time"),
		}

		a, err := s.buildValidated(ctx, req)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row for Employee %s: %s", req.EmployeeID, importRowError(err)))
			continue
		}

		if err := s.repo.Create(ctx, a); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to save row for Employee %s.", req.EmployeeID))
			continue
		}
		result.Created++
	}

	s.logger.Info("attendance csv import finished",
		zap.Int("created", result.Created),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}

func normalizeHeader(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	// Accept the camelCase headers older export files used.
	switch n {
	case "employeeid":
		return "employee_id"
	case "intime":
		return "in_time"
	case "outtime":
		return "out_time"
	}
	return n
}

func importRowError(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if rules, ok := appErr.Details.([]string); ok && len(rules) > 0 {
			return strings.Join(rules, " ")
		}
		return appErr.Message
	}
	return err.Error()
}
