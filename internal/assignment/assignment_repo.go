package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GroupMeta is the slice of the owning group the tracker needs for its
// invariant checks, fetched without importing the group package.
type GroupMeta struct {
	ID       string
	IsActive bool
}

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *EmployeeAssignment) error
	Update(ctx context.Context, a *EmployeeAssignment) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*EmployeeAssignment, error)
	FindByGroupAndEmployee(ctx context.Context, groupID, employeeID string) (*EmployeeAssignment, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) (*EmployeeAssignment, error)
	FindAllByGroup(ctx context.Context, groupID string) ([]EmployeeAssignment, error)
	FindActiveByGroup(ctx context.Context, groupID string) ([]EmployeeAssignment, error)
	CompleteAllActiveByGroup(ctx context.Context, groupID string, endDate time.Time) (int64, error)
	DeleteAllByGroup(ctx context.Context, groupID string) error
	FindGroupMeta(ctx context.Context, groupID string) (*GroupMeta, error)
	SupervisesActiveGroup(ctx context.Context, employeeID string) (bool, error)
	HasAttendanceHistory(ctx context.Context, assignmentID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a copy bound to tx. Every read and write of the copy
// goes through the transaction, so enrollment checks and their persist
// see one consistent snapshot and roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const assignmentColumns = `id, assignment_group_id, employee_id, assigned_date, end_date, status`

func scanAssignment(row *sql.Row) (*EmployeeAssignment, error) {
	var a EmployeeAssignment
	err := row.Scan(&a.ID, &a.AssignmentGroupID, &a.EmployeeID, &a.AssignedDate, &a.EndDate, &a.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, a *EmployeeAssignment) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO employee_assignments (
				id, assignment_group_id, employee_id, assigned_date, end_date, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, a.ID, a.AssignmentGroupID, a.EmployeeID, a.AssignedDate.Format("2006-01-02"), a.EndDate, a.Status)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *EmployeeAssignment) error {
	if r.tx != nil {
		var endDate any
		if a.EndDate != nil {
			endDate = a.EndDate.Format("2006-01-02")
		}
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_assignments
			SET status = $2, end_date = $3, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`, a.ID, a.Status, endDate)
		return err
	}
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		// Soft delete, matching the gorm path.
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_assignments
			SET deleted_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`, id)
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&EmployeeAssignment{}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeAssignment, error) {
	if r.tx != nil {
		return scanAssignment(r.tx.QueryRowContext(ctx, `
			SELECT `+assignmentColumns+`
			FROM employee_assignments
			WHERE id = $1 AND deleted_at IS NULL
		`, id))
	}

	var a EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByGroupAndEmployee(ctx context.Context, groupID, employeeID string) (*EmployeeAssignment, error) {
	if r.tx != nil {
		return scanAssignment(r.tx.QueryRowContext(ctx, `
			SELECT `+assignmentColumns+`
			FROM employee_assignments
			WHERE assignment_group_id = $1 AND employee_id = $2 AND deleted_at IS NULL
		`, groupID, employeeID))
	}

	var a EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_group_id = ?", groupID).
		Where("employee_id = ?", employeeID).
		First(&a).Error
	return &a, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) (*EmployeeAssignment, error) {
	if r.tx != nil {
		return scanAssignment(r.tx.QueryRowContext(ctx, `
			SELECT `+assignmentColumns+`
			FROM employee_assignments
			WHERE employee_id = $1 AND status = $2 AND deleted_at IS NULL
		`, employeeID, StatusActive))
	}

	var a EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByGroup(ctx context.Context, groupID string) ([]EmployeeAssignment, error) {
	var rows []EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_group_id = ?", groupID).
		Order("assigned_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByGroup(ctx context.Context, groupID string) ([]EmployeeAssignment, error) {
	var rows []EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_group_id = ?", groupID).
		Where("status = ?", StatusActive).
		Order("assigned_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// CompleteAllActiveByGroup flips every active membership of the group to
// completed in one statement so group-end holds its locks briefly. It goes
// through the transaction when one is attached.
func (r *repository) CompleteAllActiveByGroup(ctx context.Context, groupID string, endDate time.Time) (int64, error) {
	query := `
UPDATE employee_assignments
SET status = $1, end_date = $2, updated_at = NOW()
WHERE assignment_group_id = $3 AND status = $4 AND deleted_at IS NULL
`
	args := []any{StatusCompleted, endDate.Format("2006-01-02"), groupID, StatusActive}

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	res := r.db.WithContext(ctx).Exec(
		"UPDATE employee_assignments SET status = ?, end_date = ?, updated_at = NOW() WHERE assignment_group_id = ? AND status = ? AND deleted_at IS NULL",
		StatusCompleted, endDate.Format("2006-01-02"), groupID, StatusActive,
	)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteAllByGroup(ctx context.Context, groupID string) error {
	if r.tx != nil {
		// Soft delete, matching the gorm path.
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_assignments
			SET deleted_at = NOW()
			WHERE assignment_group_id = $1 AND deleted_at IS NULL
		`, groupID)
		return err
	}
	return r.db.WithContext(ctx).
		Where("assignment_group_id = ?", groupID).
		Delete(&EmployeeAssignment{}).Error
}

func (r *repository) FindGroupMeta(ctx context.Context, groupID string) (*GroupMeta, error) {
	query := `
		SELECT id::text, is_active
		FROM assignment_groups
		WHERE id = $1 AND deleted_at IS NULL
	`

	if r.tx != nil {
		var meta GroupMeta
		err := r.tx.QueryRowContext(ctx, query, groupID).Scan(&meta.ID, &meta.IsActive)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &meta, nil
	}

	var meta GroupMeta
	err := r.db.WithContext(ctx).Raw(`
		SELECT id::text AS id, is_active
		FROM assignment_groups
		WHERE id = ? AND deleted_at IS NULL
	`, groupID).Scan(&meta).Error
	if err != nil {
		return nil, err
	}
	if meta.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &meta, nil
}

func (r *repository) SupervisesActiveGroup(ctx context.Context, employeeID string) (bool, error) {
	var count int64

	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM assignment_groups
			WHERE supervisor_id = $1 AND is_active = true AND deleted_at IS NULL
		`, employeeID).Scan(&count)
		return count > 0, err
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM assignment_groups
		WHERE supervisor_id = ? AND is_active = true AND deleted_at IS NULL
	`, employeeID).Scan(&count).Error
	return count > 0, err
}

func (r *repository) HasAttendanceHistory(ctx context.Context, assignmentID string) (bool, error) {
	var count int64

	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM attendances
			WHERE employee_assignment_id = $1
		`, assignmentID).Scan(&count)
		return count > 0, err
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM attendances
		WHERE employee_assignment_id = ?
	`, assignmentID).Scan(&count).Error
	return count > 0, err
}

// IsNotFound reports whether err is the repository's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
