package apperror

import "errors"

// HTTPError is the wire-level projection of an error: everything a
// handler needs to fill the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

// ToHTTP projects any error onto its HTTP triple. AppErrors anywhere in
// the chain carry their own code and status; everything else is reported
// as an internal error without leaking the underlying message.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
