package documenterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"document category not found",
		http.StatusNotFound,
	)
	ErrDuplicateCategory = apperror.New(
		apperror.CodeConflict,
		"a document category with this code already exists",
		http.StatusConflict,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrExpiryRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this document category requires an expiry date",
		http.StatusBadRequest,
	)
	ErrDocumentNotPending = apperror.New(
		apperror.CodeInvalidState,
		"document is not pending verification",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
