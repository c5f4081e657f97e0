package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the identity record badge scans resolve against. The five
// identity columns are each unique; Tag is the badge identifier used by
// attendance marking.
type Employee struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name       string         `gorm:"column:name;size:100;not null"`
	Email      string         `gorm:"column:email;size:255;not null;uniqueIndex:uq_employees_email"`
	Phone      string         `gorm:"column:phone;size:30;not null;uniqueIndex:uq_employees_phone"`
	Tag        string         `gorm:"column:tag;size:100;not null;uniqueIndex:uq_employees_tag"`
	NationalID string         `gorm:"column:national_id;size:50;not null;uniqueIndex:uq_employees_national_id"`
	SSN        string         `gorm:"column:ssn;size:50;not null;uniqueIndex:uq_employees_ssn"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
