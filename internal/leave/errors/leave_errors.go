package leaveerrors

import (
	"fmt"
	"net/http"

	"vthr/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"status must be 'Pending', 'Approved' or 'Rejected'",
		http.StatusBadRequest,
	)
)

func NewInvalidLeaveType(leaveType string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Invalid leave type: %s", leaveType),
		http.StatusBadRequest,
	)
}

// NewInsufficientBalance reports both sides of the shortfall so the caller can
// correct the request without another round trip.
func NewInsufficientBalance(leaveType string, available, requested int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInsufficientBalance,
		fmt.Sprintf("Insufficient %s leave balance: available %d, requested %d", leaveType, available, requested),
		http.StatusUnprocessableEntity,
	).WithDetails(map[string]int{
		"available": available,
		"requested": requested,
	})
}
