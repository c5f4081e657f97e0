package assignment

import (
	"errors"
	"strings"

	assignmenterrors "github.com/kajugadaniels/eps-attendify-api/internal/assignment/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError is the race backstop: a concurrent enrollment that
// slips past the pre-checks still lands on the unique (group, employee)
// constraint and comes back as the same conflict error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_assignments_group_employee" {
			return assignmenterrors.ErrAlreadyEnrolled
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_assignments_group_employee") {
		return assignmenterrors.ErrAlreadyEnrolled
	}

	return err
}
