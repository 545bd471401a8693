package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type ListAllBorrowedBooksQuery struct {
	Principal authorization.Principal
}

type ListAllBorrowedBooksResult struct {
	Items []LedgerItem
}

// ListAllBorrowedBooksUseCase returns every active loan across all users,
// joined with catalog and borrower details. Admin only.
type ListAllBorrowedBooksUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAllBorrowedBooksUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListAllBorrowedBooksUseCase {
	return &ListAllBorrowedBooksUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListAllBorrowedBooksUseCase) Execute(ctx context.Context, query ListAllBorrowedBooksQuery) (*ListAllBorrowedBooksResult, error) {
	if query.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if !query.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	loans, err := uc.loanRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active loans", "error", err)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	if len(loans) == 0 {
		return &ListAllBorrowedBooksResult{Items: []LedgerItem{}}, nil
	}

	bookIDs := make([]uint, 0, len(loans))
	userIDs := make([]uint, 0, len(loans))
	seenBooks := make(map[uint]struct{}, len(loans))
	seenUsers := make(map[uint]struct{}, len(loans))
	for _, l := range loans {
		if _, ok := seenBooks[l.BookID()]; !ok {
			seenBooks[l.BookID()] = struct{}{}
			bookIDs = append(bookIDs, l.BookID())
		}
		if _, ok := seenUsers[l.UserID()]; !ok {
			seenUsers[l.UserID()] = struct{}{}
			userIDs = append(userIDs, l.UserID())
		}
	}

	books, err := uc.bookRepo.GetByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get books for loans: %w", err)
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for loans: %w", err)
	}

	items := make([]LedgerItem, 0, len(loans))
	for _, l := range loans {
		items = append(items, LedgerItem{
			Loan: l,
			Book: books[l.BookID()],
			User: users[l.UserID()],
		})
	}

	return &ListAllBorrowedBooksResult{Items: items}, nil
}
