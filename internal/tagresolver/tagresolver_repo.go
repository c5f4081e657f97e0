package tagresolver

import (
	"context"
	"errors"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tagresolver_repo.go -destination=mock/tagresolver_repo_mock.go -package=mock
type Repository interface {
	FindActiveGroupBySupervisorTag(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error)
	FindActiveAssignmentByEmployeeTag(ctx context.Context, tagID string) (*assignment.EmployeeAssignment, error)
	FindStandInAssignment(ctx context.Context, groupID string) (*assignment.EmployeeAssignment, error)
	FindGroupByID(ctx context.Context, groupID string) (*assignmentgroup.AssignmentGroup, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveGroupBySupervisorTag(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error) {
	var group assignmentgroup.AssignmentGroup
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = assignment_groups.supervisor_id").
		Where("employees.tag = ?", tagID).
		Where("assignment_groups.is_active = true").
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) FindActiveAssignmentByEmployeeTag(ctx context.Context, tagID string) (*assignment.EmployeeAssignment, error) {
	var a assignment.EmployeeAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = employee_assignments.employee_id").
		Where("employees.tag = ?", tagID).
		Where("employee_assignments.status = ?", assignment.StatusActive).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindStandInAssignment picks the group's longest-standing active
// membership. Ordering is deterministic so repeated lookups land on the
// same row.
func (r *repository) FindStandInAssignment(ctx context.Context, groupID string) (*assignment.EmployeeAssignment, error) {
	var a assignment.EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_group_id = ?", groupID).
		Where("status = ?", assignment.StatusActive).
		Order("assigned_date ASC, id ASC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindGroupByID(ctx context.Context, groupID string) (*assignmentgroup.AssignmentGroup, error) {
	var group assignmentgroup.AssignmentGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", groupID).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
