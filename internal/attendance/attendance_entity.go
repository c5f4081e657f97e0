package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one presence record per assignment, date and role. A scan
// can never double-record a day, and a supervisor record riding the
// group's stand-in assignment never collides with that worker's own scan.
// DaySalary is a snapshot of the department rate at marking time.
type Attendance struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeAssignmentID uuid.UUID `gorm:"column:employee_assignment_id;type:uuid;not null;uniqueIndex:uq_attendances_assignment_date;index"`
	Date                 time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendances_assignment_date"`
	Attended             bool      `gorm:"column:attended;not null;default:true"`
	DaySalary            string    `gorm:"column:day_salary;type:numeric(12,2);not null"`
	IsSupervisor         bool      `gorm:"column:is_supervisor;not null;default:false;uniqueIndex:uq_attendances_assignment_date"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
