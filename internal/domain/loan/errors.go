package loan

import (
	"fmt"

	"libris/internal/shared/errors"
)

// NewAlreadyBorrowedError rejects overlapping loans of the same title by one
// user. This is a business rule, not a stock limitation.
func NewAlreadyBorrowedError(activeCopies int) *errors.AppError {
	copies := "copies"
	if activeCopies == 1 {
		copies = "copy"
	}
	return errors.NewUnprocessableError(
		fmt.Sprintf("you have already borrowed %d %s of this book", activeCopies, copies),
	)
}

// NewNotBorrowedError is returned when a return has no matching active loan.
func NewNotBorrowedError() *errors.AppError {
	return errors.NewUnprocessableError("you have not borrowed this book")
}

// NewNotFoundError creates the error returned when a loan does not exist.
func NewNotFoundError(id uint) *errors.AppError {
	return errors.NewNotFoundError("loan not found", fmt.Sprintf("loan ID %d", id))
}
