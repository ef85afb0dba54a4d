package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary profile not found",
		http.StatusNotFound,
	)

	ErrNoActiveProfile = apperror.New(
		apperror.CodeNotFound,
		"Employee has no active salary profile",
		http.StatusNotFound,
	)

	ErrActiveProfileExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active salary profile",
		http.StatusConflict,
	)

	ErrUnknownComponentCode = apperror.New(
		apperror.CodeInvalidInput,
		"Amount provided for an unknown salary component",
		http.StatusBadRequest,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Component amounts must not be negative",
		http.StatusBadRequest,
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

	ErrInvalidEffectiveFrom = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid effective_from format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
