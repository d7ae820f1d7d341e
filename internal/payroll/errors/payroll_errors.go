package payrollerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
	ErrNoActiveStructure = apperror.New(
		apperror.CodeInvalidState,
		"employee has no active salary structure",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts must be non-negative decimals",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrDuplicatePayroll = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this employee and period",
		http.StatusConflict,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll status transition",
		http.StatusBadRequest,
	)
	ErrPayrollNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only an approved payroll can be marked paid",
		http.StatusBadRequest,
	)
)
