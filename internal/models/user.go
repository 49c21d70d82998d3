package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// BeforeSave normalizes the email so the unique index is case-insensitive
// in practice and lookups can compare lowercased values directly.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	return nil
}
