package grievanceerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrGrievanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"grievance not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid grievance status transition",
		http.StatusBadRequest,
	)
	ErrResolutionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"resolution is required when resolving a grievance",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
