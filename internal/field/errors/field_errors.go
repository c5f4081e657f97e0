package fielderrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrFieldNotFound = apperror.New(
		apperror.CodeNotFound,
		"field not found",
		http.StatusNotFound,
	)
	ErrInvalidFieldID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid field id",
		http.StatusBadRequest,
	)
)
