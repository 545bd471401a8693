// Package loan provides the loan ledger aggregate: one row per borrowed physical copy.
package loan

import (
	"fmt"
	"time"
)

// Loan represents a single borrowed physical copy. A loan is active while
// returnedAt is unset; it is created once at borrow time and mutated exactly
// once, when the copy comes back.
type Loan struct {
	id         uint
	userID     uint
	bookID     uint
	borrowedAt time.Time
	dueDate    time.Time
	returnedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewLoan creates a new active loan starting now.
func NewLoan(userID, bookID uint, dueDate time.Time) (*Loan, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if bookID == 0 {
		return nil, fmt.Errorf("book ID is required")
	}

	now := time.Now()
	if !dueDate.After(now) {
		return nil, fmt.Errorf("due date must be after the borrow date")
	}

	return &Loan{
		userID:     userID,
		bookID:     bookID,
		borrowedAt: now,
		dueDate:    dueDate,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructLoan reconstructs a loan from persistence.
func ReconstructLoan(
	id, userID, bookID uint,
	borrowedAt, dueDate time.Time,
	returnedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Loan, error) {
	if id == 0 {
		return nil, fmt.Errorf("loan ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if bookID == 0 {
		return nil, fmt.Errorf("book ID is required")
	}
	if !dueDate.After(borrowedAt) {
		return nil, fmt.Errorf("due date must be after the borrow date")
	}
	if returnedAt != nil && returnedAt.Before(borrowedAt) {
		return nil, fmt.Errorf("return date cannot precede the borrow date")
	}

	return &Loan{
		id:         id,
		userID:     userID,
		bookID:     bookID,
		borrowedAt: borrowedAt,
		dueDate:    dueDate,
		returnedAt: returnedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// ID returns the loan ID.
func (l *Loan) ID() uint {
	return l.id
}

// SetID sets the ID after persistence assigns one.
func (l *Loan) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("loan ID already set")
	}
	if id == 0 {
		return fmt.Errorf("loan ID cannot be zero")
	}
	l.id = id
	return nil
}

// UserID returns the borrower's user ID.
func (l *Loan) UserID() uint {
	return l.userID
}

// BookID returns the borrowed book's ID.
func (l *Loan) BookID() uint {
	return l.bookID
}

// BorrowedAt returns the borrow timestamp.
func (l *Loan) BorrowedAt() time.Time {
	return l.borrowedAt
}

// DueDate returns the agreed return date.
func (l *Loan) DueDate() time.Time {
	return l.dueDate
}

// ReturnedAt returns the return timestamp, nil while the copy is out.
func (l *Loan) ReturnedAt() *time.Time {
	return l.returnedAt
}

// CreatedAt returns the creation timestamp.
func (l *Loan) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns the last update timestamp.
func (l *Loan) UpdatedAt() time.Time {
	return l.updatedAt
}

// IsActive reports whether the copy is still out.
func (l *Loan) IsActive() bool {
	return l.returnedAt == nil
}

// IsOverdue reports whether an active loan passed its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && now.After(l.dueDate)
}

// MarkReturned records the return. A loan can only be returned once.
func (l *Loan) MarkReturned(at time.Time) error {
	if l.returnedAt != nil {
		return fmt.Errorf("loan already returned at %s", l.returnedAt.Format(time.RFC3339))
	}
	if at.Before(l.borrowedAt) {
		return fmt.Errorf("return date cannot precede the borrow date")
	}
	l.returnedAt = &at
	l.updatedAt = at
	return nil
}
