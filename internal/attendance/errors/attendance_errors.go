package attendanceerrors

import (
	"net/http"

	"vthr/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeDuplicateEntry,
		"attendance already recorded for this employee and date",
		http.StatusConflict,
	)
)
