package models

import (
	"time"

	"libris/internal/shared/constants"
)

// StudentModel represents the database persistence model for the student directory.
type StudentModel struct {
	ID          uint   `gorm:"primarykey"`
	StudentName string `gorm:"not null;size:255"`
	Block       string `gorm:"size:50"`
	YearLevel   string `gorm:"size:50"`
	Email       string `gorm:"not null;size:255"`
	Phone       string `gorm:"size:50"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM.
func (StudentModel) TableName() string {
	return constants.TableStudents
}
