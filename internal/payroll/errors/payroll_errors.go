package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll run not found",
		http.StatusNotFound,
	)

	ErrRunAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A payroll run already exists for this period",
		http.StatusConflict,
	)

	ErrRunInProgress = apperror.New(
		apperror.CodeConflict,
		"A payroll run for this period is already in progress",
		http.StatusConflict,
	)

	ErrNoActiveProfiles = apperror.New(
		apperror.CodeInvalidState,
		"No active salary profiles to run payroll for",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Payroll run status does not allow this action",
		http.StatusConflict,
	)

	ErrRunNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"Payroll run must be approved first",
		http.StatusConflict,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)

	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll settings not found",
		http.StatusNotFound,
	)

	ErrInvalidTaxSlabs = apperror.New(
		apperror.CodeInvalidInput,
		"Tax slabs must be contiguous, non-overlapping and start at zero",
		http.StatusBadRequest,
	)

	ErrPayslipsNotReady = apperror.New(
		apperror.CodeInvalidState,
		"Payslips have not been generated for this run yet",
		http.StatusConflict,
	)
)
