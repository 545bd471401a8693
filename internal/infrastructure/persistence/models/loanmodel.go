package models

import (
	"time"

	"libris/internal/shared/constants"
)

// LoanModel represents the database persistence model for the loan ledger.
// One row per borrowed physical copy; date_return is null while the copy is
// out. Column names follow the ledger's established schema.
type LoanModel struct {
	ID         uint       `gorm:"primarykey"`
	UserID     uint       `gorm:"not null;index:idx_loans_user_book_active,priority:1"`
	BookID     uint       `gorm:"not null;index:idx_loans_user_book_active,priority:2;index:idx_loans_book"`
	BorrowedAt time.Time  `gorm:"column:date_borrowed;not null"`
	DueDate    time.Time  `gorm:"column:due_date;not null"`
	ReturnedAt *time.Time `gorm:"column:date_return;index:idx_loans_user_book_active,priority:3"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM.
func (LoanModel) TableName() string {
	return constants.TableLoans
}
