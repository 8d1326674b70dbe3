package payrollerrors

import (
	"fmt"
	"net/http"

	"vthr/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"Invalid status",
		http.StatusBadRequest,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"a paid payroll cannot go back to Generated",
		http.StatusConflict,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip has not been generated for this payroll",
		http.StatusNotFound,
	)
)

func NewDuplicatePayroll(employeeName, month string, year int) *apperror.AppError {
	return apperror.New(
		apperror.CodeDuplicateEntry,
		fmt.Sprintf("Payroll already exists for %s for %s %d", employeeName, month, year),
		http.StatusConflict,
	)
}
