package models

import (
	"time"

	"gorm.io/gorm"

	"libris/internal/shared/constants"
)

// UserModel represents the database persistence model for user accounts.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:255"`
	Email        string `gorm:"not null;size:255;uniqueIndex:idx_users_email"`
	PasswordHash string `gorm:"column:password;not null;size:255"`
	Role         string `gorm:"not null;default:user;size:20;index:idx_users_role"`
	Status       string `gorm:"not null;default:active;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM.
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.Role == "" {
		m.Role = "user"
	}
	if m.Status == "" {
		m.Status = constants.DefaultUserStatus
	}
	return nil
}
