package usecases

import (
	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/domain/user"
)

// BorrowedBookItem pairs an active loan with its catalog entry.
type BorrowedBookItem struct {
	Loan *loan.Loan
	Book *book.Book
}

// LedgerItem pairs a loan with its catalog entry and borrower for the
// admin-wide ledger views.
type LedgerItem struct {
	Loan *loan.Loan
	Book *book.Book
	User *user.User
}
