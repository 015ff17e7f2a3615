package models

import "time"

// AppSetting is a persisted key/value flag.
type AppSetting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingInitialDataLoaded = "initial_data_loaded"
