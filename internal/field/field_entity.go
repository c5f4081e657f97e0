package field

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Field is a work site employees get deployed to.
type Field struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;size:100;not null"`
	Address   string         `gorm:"column:address;size:255;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Field) TableName() string {
	return "fields"
}
