package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Finance entry not found",
		http.StatusNotFound,
	)

	ErrInvalidEntryDate = apperror.New(
		apperror.CodeInvalidInput,
		"Entry date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be in YYYY-MM format",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)

	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid entry id",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)
)
