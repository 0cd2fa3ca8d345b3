package vehicleerrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidVehicleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vehicle id",
		http.StatusBadRequest,
	)
	ErrVehicleNotFound = apperror.New(
		apperror.CodeNotFound,
		"vehicle not found",
		http.StatusNotFound,
	)
	ErrInvalidDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"document type must be one of insurance, vignette or roadworthiness",
		http.StatusBadRequest,
	)
)
