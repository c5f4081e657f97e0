package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department carries the day rate applied to attendance records created
// under it. DaySalary is text on the wire and in storage; attendance
// snapshots it verbatim.
type Department struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;size:100;not null"`
	DaySalary string         `gorm:"column:day_salary;size:255;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}
