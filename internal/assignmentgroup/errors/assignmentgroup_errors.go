package assignmentgrouperrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment group not found",
		http.StatusNotFound,
	)
	ErrInvalidGroupID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid assignment group id",
		http.StatusBadRequest,
	)
	ErrDuplicateGroup = apperror.New(
		apperror.CodeConflict,
		"a group with this name already exists for this field and department",
		http.StatusConflict,
	)
	ErrGroupAlreadyEnded = apperror.New(
		apperror.CodeInvalidState,
		"assignment group has already ended",
		http.StatusBadRequest,
	)
	ErrInvalidEndDate = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after the group created_date",
		http.StatusBadRequest,
	)
	ErrSupervisorHasAssignment = apperror.New(
		apperror.CodeInvalidState,
		"supervisor holds an active worker assignment",
		http.StatusBadRequest,
	)
	ErrInvalidSupervisorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid supervisor id",
		http.StatusBadRequest,
	)
)
