package book

import "context"

// Repository defines the interface for book persistence operations.
// Implementations must honor a transaction provided through the context so
// that borrow/return/repair sequences run as one atomic unit.
type Repository interface {
	// Create creates a new book
	Create(ctx context.Context, book *Book) error

	// Update updates an existing book
	Update(ctx context.Context, book *Book) error

	// Delete soft deletes a book by ID, preserving its loan history
	Delete(ctx context.Context, id uint) error

	// HardDelete removes a book row and cascades its loan history
	HardDelete(ctx context.Context, id uint) error

	// GetByID retrieves a book by ID; returns (nil, nil) when absent
	GetByID(ctx context.Context, id uint) (*Book, error)

	// GetByIDForUpdate retrieves a book by ID holding a row-level write lock.
	// Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Book, error)

	// GetByIDs retrieves multiple books keyed by ID
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// List retrieves all books
	List(ctx context.Context) ([]*Book, error)

	// ListAvailable retrieves books with at least one available copy
	ListAvailable(ctx context.Context) ([]*Book, error)

	// Count returns the number of books in the catalog
	Count(ctx context.Context) (int64, error)

	// CountAvailable returns the number of books with available copies
	CountAvailable(ctx context.Context) (int64, error)
}
