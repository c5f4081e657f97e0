package employeeerrors

import (
	"net/http"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrPhoneAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this phone number already exists",
		http.StatusConflict,
	)
	ErrTagAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this tag already exists",
		http.StatusConflict,
	)
	ErrNationalIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this national id already exists",
		http.StatusConflict,
	)
	ErrSSNAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this ssn already exists",
		http.StatusConflict,
	)
)
