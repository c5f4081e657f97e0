package tagresolvererrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrInvalidTag = apperror.New(
		apperror.CodeInvalidInput,
		"tag id is required",
		http.StatusBadRequest,
	)
	ErrTagNotResolved = apperror.New(
		apperror.CodeNotFound,
		"no active assignment found for this tag",
		http.StatusNotFound,
	)
	ErrNoActiveMembers = apperror.New(
		apperror.CodeInvalidState,
		"supervised group has no active members to record against",
		http.StatusBadRequest,
	)
)
