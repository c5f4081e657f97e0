package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/kajugadaniels/eps-attendify-api/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueConstraintErrors = map[string]error{
	"uq_employees_email":       employeeerrors.ErrEmailAlreadyExists,
	"uq_employees_phone":       employeeerrors.ErrPhoneAlreadyExists,
	"uq_employees_tag":         employeeerrors.ErrTagAlreadyExists,
	"uq_employees_national_id": employeeerrors.ErrNationalIDAlreadyExists,
	"uq_employees_ssn":         employeeerrors.ErrSSNAlreadyExists,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
	}

	// gorm may flatten the driver error into text depending on version
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		for constraint, mapped := range uniqueConstraintErrors {
			if strings.Contains(errMsg, constraint) {
				return mapped
			}
		}
	}

	return err
}
