package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)

	ErrDuplicateLeaveType = apperror.New(
		apperror.CodeConflict,
		"A leave type with this name already exists",
		http.StatusConflict,
	)

	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave policy not configured for this company",
		http.StatusNotFound,
	)

	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrRequestAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)

	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance not found for this leave type and year",
		http.StatusNotFound,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave date range, expected YYYY-MM-DD with end_date on or after start_date",
		http.StatusBadRequest,
	)

	ErrEmergencyReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Emergency leave requests require a reason",
		http.StatusBadRequest,
	)

	ErrInvalidQuota = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type must use either an annual allocation or a monthly quota, not both",
		http.StatusBadRequest,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrHRApprovalNotRequired = apperror.New(
		apperror.CodeInvalidState,
		"This request does not require HR approval",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
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
)
