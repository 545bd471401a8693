package loan

import (
	"context"
	"time"
)

// Repository defines the interface for loan ledger persistence operations.
// Implementations must honor a transaction provided through the context.
type Repository interface {
	// Create appends a new loan row
	Create(ctx context.Context, loan *Loan) error

	// CreateBatch appends several loan rows in one statement
	CreateBatch(ctx context.Context, loans []*Loan) error

	// Update persists a loan mutation (setting the return date)
	Update(ctx context.Context, loan *Loan) error

	// Delete removes a loan row by ID (administrative operation)
	Delete(ctx context.Context, id uint) error

	// DeleteByBook removes every loan row for a book (hard-delete cascade)
	DeleteByBook(ctx context.Context, bookID uint) error

	// GetByID retrieves a loan by ID; returns (nil, nil) when absent
	GetByID(ctx context.Context, id uint) (*Loan, error)

	// GetActiveByUserAndBook retrieves the caller's oldest active loan for a
	// book; returns (nil, nil) when the caller has none
	GetActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*Loan, error)

	// CountActiveByBook counts active loans for a book
	CountActiveByBook(ctx context.Context, bookID uint) (int, error)

	// CountActiveByUserAndBook counts the caller's active loans for a book
	CountActiveByUserAndBook(ctx context.Context, userID, bookID uint) (int, error)

	// CountActive counts all active loans
	CountActive(ctx context.Context) (int64, error)

	// ListActiveByUser retrieves the caller's active loans, oldest first
	ListActiveByUser(ctx context.Context, userID uint) ([]*Loan, error)

	// ListActive retrieves every active loan, oldest first
	ListActive(ctx context.Context) ([]*Loan, error)

	// ListOverdue retrieves active loans whose due date passed before now
	ListOverdue(ctx context.Context, now time.Time) ([]*Loan, error)

	// List retrieves a paginated slice of the ledger, newest first
	List(ctx context.Context, filter ListFilter) ([]*Loan, int64, error)
}

// ListFilter represents filtering and pagination options for the loan ledger.
type ListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	BookID     uint
	ActiveOnly bool
}
