// Package book provides the catalog aggregate and its availability accounting.
package book

import (
	"fmt"
	"time"
)

// Book represents the catalog aggregate root. It owns the copy counters:
// totalCopies is the physical stock, availableCopies the portion not
// currently lent out. The invariant 0 <= availableCopies <= totalCopies and
// availableCopies == totalCopies - activeLoanCount is maintained
// incrementally by BorrowCopies/ReturnCopy and restored by Repair.
type Book struct {
	id              uint
	title           string
	author          string
	publisher       string
	isbn            string
	description     string
	tags            []string
	totalCopies     int
	availableCopies int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBook creates a new book with all copies available.
func NewBook(title, author, publisher, isbn string, totalCopies int) (*Book, error) {
	if title == "" {
		return nil, fmt.Errorf("book title is required")
	}
	if author == "" {
		return nil, fmt.Errorf("book author is required")
	}
	if totalCopies < 1 {
		return nil, fmt.Errorf("total copies must be at least 1, got %d", totalCopies)
	}

	now := time.Now()
	return &Book{
		title:           title,
		author:          author,
		publisher:       publisher,
		isbn:            isbn,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructBook reconstructs a book from persistence.
func ReconstructBook(
	id uint,
	title, author, publisher, isbn, description string,
	tags []string,
	totalCopies, availableCopies int,
	createdAt, updatedAt time.Time,
) (*Book, error) {
	if id == 0 {
		return nil, fmt.Errorf("book ID cannot be zero")
	}
	if title == "" {
		return nil, fmt.Errorf("book title is required")
	}
	if totalCopies < 1 {
		return nil, fmt.Errorf("total copies must be at least 1, got %d", totalCopies)
	}
	if availableCopies < 0 || availableCopies > totalCopies {
		return nil, fmt.Errorf("available copies %d out of range [0, %d]", availableCopies, totalCopies)
	}

	return &Book{
		id:              id,
		title:           title,
		author:          author,
		publisher:       publisher,
		isbn:            isbn,
		description:     description,
		tags:            tags,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// ID returns the book ID.
func (b *Book) ID() uint {
	return b.id
}

// SetID sets the ID after persistence assigns one.
func (b *Book) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("book ID already set")
	}
	if id == 0 {
		return fmt.Errorf("book ID cannot be zero")
	}
	b.id = id
	return nil
}

// Title returns the book title.
func (b *Book) Title() string {
	return b.title
}

// Author returns the book author.
func (b *Book) Author() string {
	return b.author
}

// Publisher returns the book publisher.
func (b *Book) Publisher() string {
	return b.publisher
}

// ISBN returns the book ISBN.
func (b *Book) ISBN() string {
	return b.isbn
}

// Description returns the book description.
func (b *Book) Description() string {
	return b.description
}

// Tags returns the book tags.
func (b *Book) Tags() []string {
	return b.tags
}

// TotalCopies returns the total number of physical copies.
func (b *Book) TotalCopies() int {
	return b.totalCopies
}

// AvailableCopies returns the number of copies not currently lent out.
func (b *Book) AvailableCopies() int {
	return b.availableCopies
}

// CreatedAt returns the creation timestamp.
func (b *Book) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt returns the last update timestamp.
func (b *Book) UpdatedAt() time.Time {
	return b.updatedAt
}

// IsAvailable reports whether at least one copy can be borrowed.
func (b *Book) IsAvailable() bool {
	return b.availableCopies > 0
}

// Status reports the availability status string exposed by the API.
func (b *Book) Status() string {
	if b.IsAvailable() {
		return "available"
	}
	return "borrowed"
}

// CanBorrowCopies reports whether numCopies can be borrowed right now.
func (b *Book) CanBorrowCopies(numCopies int) bool {
	return numCopies >= 1 && b.availableCopies >= numCopies
}

// BorrowCopies decrements the available counter for a borrow of numCopies.
func (b *Book) BorrowCopies(numCopies int) error {
	if numCopies < 1 {
		return fmt.Errorf("number of copies must be at least 1, got %d", numCopies)
	}
	if b.availableCopies < numCopies {
		return NewInsufficientCopiesError(b.availableCopies)
	}
	b.availableCopies -= numCopies
	b.updatedAt = time.Now()
	return nil
}

// ReturnCopy increments the available counter for a single returned copy.
// The counter never exceeds totalCopies; an increment that would do so
// signals drift between the counter and the loan ledger.
func (b *Book) ReturnCopy() error {
	if b.availableCopies >= b.totalCopies {
		return ErrCounterDrift
	}
	b.availableCopies++
	b.updatedAt = time.Now()
	return nil
}

// UpdateDetails replaces the descriptive attributes.
func (b *Book) UpdateDetails(title, author, publisher, isbn, description string, tags []string) error {
	if title == "" {
		return fmt.Errorf("book title is required")
	}
	if author == "" {
		return fmt.Errorf("book author is required")
	}
	b.title = title
	b.author = author
	b.publisher = publisher
	b.isbn = isbn
	b.description = description
	b.tags = tags
	b.updatedAt = time.Now()
	return nil
}

// AdjustTotalCopies changes the stock size and re-derives the available
// counter by the delta from the prior total, clamped at zero. Shrinking the
// stock below the number of copies currently out is allowed; the available
// counter bottoms out at zero and reconciles as loans come back.
func (b *Book) AdjustTotalCopies(newTotal int) error {
	if newTotal < 1 {
		return fmt.Errorf("total copies must be at least 1, got %d", newTotal)
	}
	if newTotal == b.totalCopies {
		return nil
	}

	delta := newTotal - b.totalCopies
	available := b.availableCopies + delta
	if available < 0 {
		available = 0
	}
	if available > newTotal {
		available = newTotal
	}

	b.totalCopies = newTotal
	b.availableCopies = available
	b.updatedAt = time.Now()
	return nil
}

// ComputeAvailability returns the authoritative availability for a given
// active-loan count, clamped into [0, totalCopies].
func (b *Book) ComputeAvailability(activeLoans int) int {
	available := b.totalCopies - activeLoans
	if available < 0 {
		available = 0
	}
	if available > b.totalCopies {
		available = b.totalCopies
	}
	return available
}

// Repair overwrites the available counter from the active-loan count.
// It returns the previous value and whether the stored counter had drifted.
func (b *Book) Repair(activeLoans int) (previous int, drifted bool) {
	previous = b.availableCopies
	authoritative := b.ComputeAvailability(activeLoans)
	if authoritative == b.availableCopies {
		return previous, false
	}
	b.availableCopies = authoritative
	b.updatedAt = time.Now()
	return previous, true
}
