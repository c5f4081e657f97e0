package assignmentgroup

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const GroupCounterType = "assignment_group"

type AssignmentGroup struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name         string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_assignment_groups_name_field_department" json:"name"`
	FieldID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_groups_name_field_department" json:"field_id"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_groups_name_field_department" json:"department_id"`
	SupervisorID *uuid.UUID     `gorm:"type:uuid" json:"supervisor_id"`
	CreatedDate  time.Time      `gorm:"type:date;not null" json:"created_date"`
	EndDate      *time.Time     `gorm:"type:date" json:"end_date"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AssignmentGroup) TableName() string {
	return "assignment_groups"
}
