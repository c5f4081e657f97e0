package assignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusSuspended = "suspended"
)

// EmployeeAssignment is one employee's membership in an assignment group.
// The (group, employee) pair is unique; the one-active-assignment-per-
// employee rule is enforced in the service on every persist.
type EmployeeAssignment struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	AssignmentGroupID uuid.UUID      `gorm:"column:assignment_group_id;type:uuid;not null;uniqueIndex:uq_employee_assignments_group_employee;index"`
	EmployeeID        uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_employee_assignments_group_employee;index"`
	AssignedDate      time.Time      `gorm:"column:assigned_date;type:date;not null"`
	EndDate           *time.Time     `gorm:"column:end_date;type:date"`
	Status            string         `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (EmployeeAssignment) TableName() string {
	return "employee_assignments"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusCompleted, StatusSuspended:
		return true
	default:
		return false
	}
}
