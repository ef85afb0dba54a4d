package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary component not found",
		http.StatusNotFound,
	)

	ErrDuplicateCode = apperror.New(
		apperror.CodeConflict,
		"A salary component with this code already exists",
		http.StatusConflict,
	)

	ErrPercentageBaseRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Percentage components require a base component and a percentage value",
		http.StatusBadRequest,
	)

	ErrSystemComponentImmutable = apperror.New(
		apperror.CodeInvalidState,
		"Code and kind of a system-defined component cannot be changed",
		http.StatusConflict,
	)

	ErrSystemComponentUndeletable = apperror.New(
		apperror.CodeInvalidState,
		"System-defined components cannot be deleted",
		http.StatusConflict,
	)

	ErrUnknownComponent = apperror.New(
		apperror.CodeInvalidInput,
		"Amount provided for an unknown salary component",
		http.StatusBadRequest,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Component amounts must not be negative",
		http.StatusBadRequest,
	)

	ErrComponentCycle = apperror.New(
		apperror.CodeInvalidState,
		"Percentage components form a cycle",
		http.StatusConflict,
	)

	ErrUnknownPercentageBase = apperror.New(
		apperror.CodeInvalidState,
		"Percentage component references an unknown base component",
		http.StatusConflict,
	)

	ErrGrossBaseOnEarning = apperror.New(
		apperror.CodeInvalidState,
		"An earning component cannot be a percentage of gross",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)
)
