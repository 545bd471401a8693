package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type ListBorrowedBooksQuery struct {
	Principal authorization.Principal
}

type ListBorrowedBooksResult struct {
	Items []BorrowedBookItem
}

// ListBorrowedBooksUseCase returns the caller's active loans with their
// catalog entries, oldest borrow first.
type ListBorrowedBooksUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	logger   logger.Interface
}

func NewListBorrowedBooksUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	logger logger.Interface,
) *ListBorrowedBooksUseCase {
	return &ListBorrowedBooksUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		logger:   logger,
	}
}

func (uc *ListBorrowedBooksUseCase) Execute(ctx context.Context, query ListBorrowedBooksQuery) (*ListBorrowedBooksResult, error) {
	if query.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	loans, err := uc.loanRepo.ListActiveByUser(ctx, query.Principal.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list active loans", "user_id", query.Principal.UserID, "error", err)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	items, err := uc.attachBooks(ctx, loans)
	if err != nil {
		return nil, err
	}

	return &ListBorrowedBooksResult{Items: items}, nil
}

func (uc *ListBorrowedBooksUseCase) attachBooks(ctx context.Context, loans []*loan.Loan) ([]BorrowedBookItem, error) {
	if len(loans) == 0 {
		return []BorrowedBookItem{}, nil
	}

	bookIDs := make([]uint, 0, len(loans))
	seen := make(map[uint]struct{}, len(loans))
	for _, l := range loans {
		if _, ok := seen[l.BookID()]; ok {
			continue
		}
		seen[l.BookID()] = struct{}{}
		bookIDs = append(bookIDs, l.BookID())
	}

	books, err := uc.bookRepo.GetByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get books for loans: %w", err)
	}

	items := make([]BorrowedBookItem, 0, len(loans))
	for _, l := range loans {
		// Soft-deleted books drop out of the catalog lookup; the loan row
		// still renders without its catalog entry.
		items = append(items, BorrowedBookItem{Loan: l, Book: books[l.BookID()]})
	}
	return items, nil
}
