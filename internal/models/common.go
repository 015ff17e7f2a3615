package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel uses portable column types so the same schema runs on SQLite and Postgres.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All returns the models managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Business{},
		&AppSetting{},
	}
}
