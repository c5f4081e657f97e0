package assignmentgroup

import (
	"errors"
	"strings"

	assignmentgrouperrors "github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_assignment_groups_name_field_department" {
			return assignmentgrouperrors.ErrDuplicateGroup
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_assignment_groups_name_field_department") {
		return assignmentgrouperrors.ErrDuplicateGroup
	}

	return err
}
