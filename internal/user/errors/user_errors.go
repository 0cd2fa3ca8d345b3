package usererrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"a user with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidContractExpiry = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract_expiry, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
