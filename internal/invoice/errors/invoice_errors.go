package invoiceerrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidInvoiceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid invoice id",
		http.StatusBadRequest,
	)
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice not found",
		http.StatusNotFound,
	)
	ErrInvalidInvoiceDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid invoice_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidInvoiceStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be pending or paid",
		http.StatusBadRequest,
	)
	ErrReminderNotSent = apperror.New(
		apperror.CodeServiceUnavailable,
		"reminder email could not be sent",
		http.StatusServiceUnavailable,
	)
)
