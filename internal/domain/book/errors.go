package book

import (
	"fmt"

	"libris/internal/shared/errors"
)

// ErrCounterDrift signals that the incrementally maintained available-copies
// counter disagrees with the loan ledger. Callers repair from the ledger
// rather than letting the counter leave its valid range.
var ErrCounterDrift = errors.NewInternalError("book availability counter out of sync with loan ledger")

// NewNotFoundError creates the error returned when a book does not exist.
func NewNotFoundError(id uint) *errors.AppError {
	return errors.NewNotFoundError("book not found", fmt.Sprintf("book ID %d", id))
}

// NewInsufficientCopiesError reports how many copies are actually available.
func NewInsufficientCopiesError(available int) *errors.AppError {
	copies := "copies"
	if available == 1 {
		copies = "copy"
	}
	return errors.NewUnprocessableError(
		fmt.Sprintf("only %d %s available for borrowing", available, copies),
	)
}

// NewHasActiveLoansError blocks catalog deletion while copies are out.
func NewHasActiveLoansError(activeLoans int) *errors.AppError {
	return errors.NewUnprocessableError(
		fmt.Sprintf("book has %d active loans and cannot be deleted", activeLoans),
	)
}
