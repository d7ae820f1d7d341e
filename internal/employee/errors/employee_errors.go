package employeeerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
	ErrUserEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A user with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid joining_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidExitDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid exit_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeAlreadyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already deactivated",
		http.StatusBadRequest,
	)
	ErrReportingManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Reporting manager does not exist",
		http.StatusBadRequest,
	)
)
