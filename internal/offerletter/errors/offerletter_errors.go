package offerlettererrors

import (
	"net/http"

	"vthr/internal/shared/apperror"
)

var (
	ErrOfferLetterNotFound = apperror.New(
		apperror.CodeNotFound,
		"Offer letter not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"status must be 'Generated', 'Issued', 'Accepted' or 'Rejected'",
		http.StatusBadRequest,
	)
)
