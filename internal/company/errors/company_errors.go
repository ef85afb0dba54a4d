package errors

import (
	"net/http"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrDuplicateCompanyName = apperror.New(
		apperror.CodeConflict,
		"A company with this name already exists",
		http.StatusConflict,
	)

	ErrSeedingFailed = apperror.New(
		apperror.CodeInternalError,
		"Company was created but default provisioning did not complete",
		http.StatusInternalServerError,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)
)
