package organizationerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrUnknownLevel = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown hierarchy level",
		http.StatusBadRequest,
	)

	ErrNodeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hierarchy node not found",
		http.StatusNotFound,
	)

	ErrParentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Parent id is required for this level",
		http.StatusBadRequest,
	)

	ErrParentNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"Group is the root level and cannot have a parent",
		http.StatusBadRequest,
	)

	ErrParentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Parent node does not exist at the level above",
		http.StatusBadRequest,
	)

	ErrDuplicateName = apperror.New(
		apperror.CodeConflict,
		"A node with this name already exists under the same parent",
		http.StatusBadRequest,
	)

	ErrNodeReferenced = apperror.New(
		apperror.CodeConflict,
		"Hierarchy node is referenced by employees and cannot be deleted; deactivate it instead",
		http.StatusBadRequest,
	)

	ErrBrokenChain = apperror.New(
		apperror.CodeInvalidInput,
		"Selected hierarchy nodes do not form a consistent chain",
		http.StatusBadRequest,
	)

	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)
)
