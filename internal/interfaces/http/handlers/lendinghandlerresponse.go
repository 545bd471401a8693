package handlers

import (
	"time"

	"libris/internal/application/lending/usecases"
)

const dateLayout = "2006-01-02"

// BorrowReceiptResponse summarizes a successful borrow.
type BorrowReceiptResponse struct {
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	Copies     int    `json:"copies"`
	BorrowedAt string `json:"borrowed_at"`
	ReturnDate string `json:"return_date"`
	Available  int    `json:"available_copies"`
}

// LoanResponse is a single ledger row.
type LoanResponse struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	BookID     uint    `json:"book_id"`
	BorrowedAt string  `json:"date_borrowed"`
	DueDate    string  `json:"due_date"`
	ReturnedAt *string `json:"date_return"`
	Overdue    bool    `json:"overdue"`
}

// BorrowedBookResponse pairs an active loan with its catalog entry.
type BorrowedBookResponse struct {
	Loan LoanResponse  `json:"loan"`
	Book *BookResponse `json:"book,omitempty"`
}

// LedgerEntryResponse adds the borrower to a ledger row for admin views.
type LedgerEntryResponse struct {
	Loan          LoanResponse  `json:"loan"`
	Book          *BookResponse `json:"book,omitempty"`
	BorrowerName  string        `json:"borrower_name,omitempty"`
	BorrowerEmail string        `json:"borrower_email,omitempty"`
}

// RepairReportResponse reports the outcome of an availability repair.
type RepairReportResponse struct {
	BookID      uint `json:"book_id"`
	Previous    int  `json:"previous_available"`
	Current     int  `json:"current_available"`
	ActiveLoans int  `json:"active_loans"`
	Drifted     bool `json:"drifted"`
}

func toLoanResponse(item usecases.BorrowedBookItem) BorrowedBookResponse {
	resp := BorrowedBookResponse{Loan: loanRow(item)}
	if item.Book != nil {
		b := toBookResponse(item.Book)
		resp.Book = &b
	}
	return resp
}

func loanRow(item usecases.BorrowedBookItem) LoanResponse {
	l := item.Loan
	row := LoanResponse{
		ID:         l.ID(),
		UserID:     l.UserID(),
		BookID:     l.BookID(),
		BorrowedAt: l.BorrowedAt().Format(time.RFC3339),
		DueDate:    l.DueDate().Format(dateLayout),
		Overdue:    l.IsOverdue(time.Now()),
	}
	if returned := l.ReturnedAt(); returned != nil {
		formatted := returned.Format(time.RFC3339)
		row.ReturnedAt = &formatted
	}
	return row
}

func toLedgerEntryResponse(item usecases.LedgerItem) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		Loan: loanRow(usecases.BorrowedBookItem{Loan: item.Loan, Book: item.Book}),
	}
	if item.Book != nil {
		b := toBookResponse(item.Book)
		resp.Book = &b
	}
	if item.User != nil {
		resp.BorrowerName = item.User.Name()
		resp.BorrowerEmail = item.User.Email()
	}
	return resp
}
