package models

import (
	"strings"
)

type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // hash or plain text, see auth.PasswordHasher
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
