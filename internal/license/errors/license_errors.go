package licenseerrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidLicenseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid license id",
		http.StatusBadRequest,
	)
	ErrLicenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"license not found",
		http.StatusNotFound,
	)
	ErrInvalidExpiryDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expiry_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPurchaseDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid purchase_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
