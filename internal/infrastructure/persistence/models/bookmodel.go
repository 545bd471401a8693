package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"libris/internal/shared/constants"
)

// BookModel represents the database persistence model for catalog books.
type BookModel struct {
	ID              uint   `gorm:"primarykey"`
	Title           string `gorm:"not null;size:255;index:idx_books_title"`
	Author          string `gorm:"not null;size:255;index:idx_books_author"`
	Publisher       string `gorm:"size:255"`
	ISBN            string `gorm:"size:32;index:idx_books_isbn"`
	Description     string `gorm:"size:2000"`
	Tags            datatypes.JSON
	TotalCopies     int `gorm:"not null;default:1"`
	AvailableCopies int `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (BookModel) TableName() string {
	return constants.TableBooks
}

// BeforeCreate hook for GORM.
func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.TotalCopies == 0 {
		m.TotalCopies = 1
	}
	return nil
}
