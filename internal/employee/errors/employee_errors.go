package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrDuplicateCardNumber = apperror.New(
		apperror.CodeConflict,
		"This card number is already assigned to another employee",
		http.StatusConflict,
	)

	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid joining_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)
)
