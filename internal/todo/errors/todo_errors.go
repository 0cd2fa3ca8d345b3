package todoerrors

import (
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"
)

var (
	ErrInvalidTodoID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid todo id",
		http.StatusBadRequest,
	)
	ErrTodoNotFound = apperror.New(
		apperror.CodeNotFound,
		"todo not found",
		http.StatusNotFound,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due date, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be pending or done",
		http.StatusBadRequest,
	)
)
