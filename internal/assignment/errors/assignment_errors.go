package assignmenterrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee assignment not found",
		http.StatusNotFound,
	)
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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of active, completed, suspended",
		http.StatusBadRequest,
	)
	ErrInvalidEndDate = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after assigned_date",
		http.StatusBadRequest,
	)
	ErrAlreadyEnrolled = apperror.New(
		apperror.CodeConflict,
		"employee is already enrolled in this group",
		http.StatusConflict,
	)
	ErrGroupInactive = apperror.New(
		apperror.CodeInvalidState,
		"assignment group is not active",
		http.StatusBadRequest,
	)
	ErrHasActiveAssignment = apperror.New(
		apperror.CodeInvalidState,
		"employee already holds an active assignment",
		http.StatusBadRequest,
	)
	ErrIsSupervisor = apperror.New(
		apperror.CodeInvalidState,
		"employee supervises an active group and cannot hold a worker assignment",
		http.StatusBadRequest,
	)
	ErrHasAttendanceHistory = apperror.New(
		apperror.CodeConflict,
		"assignment has attendance history and cannot be removed",
		http.StatusConflict,
	)
)
