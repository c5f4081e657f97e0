package assignmentgroup

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// MemberCounts carries the aggregate membership numbers shown on list
// and detail responses.
type MemberCounts struct {
	GroupID         string
	TotalEmployees  int
	ActiveEmployees int
}

//go:generate mockgen -source=assignmentgroup_repo.go -destination=mock/assignmentgroup_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, group *AssignmentGroup) error
	FindAll(ctx context.Context, filter ListFilter) ([]AssignmentGroup, error)
	FindByID(ctx context.Context, id string) (*AssignmentGroup, error)
	Update(ctx context.Context, group *AssignmentGroup) error
	Delete(ctx context.Context, id string) error
	CountMembers(ctx context.Context, groupIDs []string) (map[string]MemberCounts, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, group *AssignmentGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]AssignmentGroup, error) {
	var groups []AssignmentGroup

	q := r.db.WithContext(ctx).Model(&AssignmentGroup{})
	if filter.FieldID != "" {
		q = q.Where("field_id = ?", filter.FieldID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	err := q.Order("created_at DESC").Find(&groups).Error
	return groups, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AssignmentGroup, error) {
	var group AssignmentGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) Update(ctx context.Context, group *AssignmentGroup) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE assignment_groups
			SET name = $2, field_id = $3, department_id = $4, supervisor_id = $5,
			    end_date = $6, is_active = $7, notes = $8, updated_at = now()
			WHERE id = $1
		`, group.ID, group.Name, group.FieldID, group.DepartmentID,
			group.SupervisorID, group.EndDate, group.IsActive, group.Notes)
		return err
	}
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		// Soft delete, matching the gorm path.
		_, err := r.tx.ExecContext(ctx, `
			UPDATE assignment_groups
			SET deleted_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`, id)
		return err
	}
	return r.db.WithContext(ctx).Delete(&AssignmentGroup{}, "id = ?", id).Error
}

func (r *repository) CountMembers(ctx context.Context, groupIDs []string) (map[string]MemberCounts, error) {
	counts := make(map[string]MemberCounts, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			assignment_group_id::text,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active')
		FROM employee_assignments
		WHERE assignment_group_id IN ?
		GROUP BY assignment_group_id
	`, groupIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c MemberCounts
		if err := rows.Scan(&c.GroupID, &c.TotalEmployees, &c.ActiveEmployees); err != nil {
			return nil, err
		}
		counts[c.GroupID] = c
	}

	return counts, rows.Err()
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
