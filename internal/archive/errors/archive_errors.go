package archiveerrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document id",
		http.StatusBadRequest,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"archived document not found",
		http.StatusNotFound,
	)
	ErrInvalidRetention = apperror.New(
		apperror.CodeInvalidInput,
		"invalid retention_until, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrRetentionActive = apperror.New(
		apperror.CodeConflict,
		"document is under retention and cannot be deleted",
		http.StatusConflict,
	)
)
