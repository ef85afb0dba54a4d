package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Employee has already clocked in today",
		http.StatusConflict,
	)

	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"Employee has not clocked in today",
		http.StatusConflict,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Employee has already clocked out today",
		http.StatusConflict,
	)

	ErrUnknownCard = apperror.New(
		apperror.CodeNotFound,
		"Card number is not mapped to any employee",
		http.StatusNotFound,
	)

	ErrDuplicatePunch = apperror.New(
		apperror.CodeConflict,
		"Punch with this external reference was already ingested",
		http.StatusConflict,
	)

	ErrInvalidPunch = apperror.New(
		apperror.CodeInvalidInput,
		"Punch is missing card number, external reference or timestamp",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
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
)
