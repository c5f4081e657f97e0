package attendanceerrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance already marked for this assignment and date",
		http.StatusConflict,
	)
	ErrFutureDate = apperror.New(
		apperror.CodeInvalidInput,
		"attendance date cannot be in the future",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrAssignmentInactive = apperror.New(
		apperror.CodeInvalidState,
		"assignment is not active",
		http.StatusBadRequest,
	)
	ErrGroupInactive = apperror.New(
		apperror.CodeInvalidState,
		"assignment group is not active",
		http.StatusBadRequest,
	)
	ErrDaySalaryUnavailable = apperror.New(
		apperror.CodeInternalError,
		"department day salary could not be resolved",
		http.StatusInternalServerError,
	)
)
