package attendance

import (
	"errors"
	"strings"

	attendanceerrors "github.com/kajugadaniels/eps-attendify-api/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError turns the unique (assignment, date) violation into
// the domain conflict. Two concurrent scans of the same tag race past the
// read check; exactly one insert wins and the other gets this.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendances_assignment_date" {
			return attendanceerrors.ErrAlreadyMarked
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendances_assignment_date") {
		return attendanceerrors.ErrAlreadyMarked
	}

	return err
}
