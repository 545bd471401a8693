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

type ListLoansQuery struct {
	Principal  authorization.Principal
	Page       int
	PageSize   int
	UserID     uint
	BookID     uint
	ActiveOnly bool
}

type ListLoansResult struct {
	Items []LedgerItem
	Total int64
}

// ListLoansUseCase pages through the full loan ledger, returned and active
// rows alike. Admin only.
type ListLoansUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	userRepo user.Repository
	logger   logger.Interface
}

func NewListLoansUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListLoansUseCase {
	return &ListLoansUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListLoansUseCase) Execute(ctx context.Context, query ListLoansQuery) (*ListLoansResult, error) {
	if !query.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	loans, total, err := uc.loanRepo.List(ctx, loan.ListFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		UserID:     query.UserID,
		BookID:     query.BookID,
		ActiveOnly: query.ActiveOnly,
	})
	if err != nil {
		uc.logger.Errorw("failed to list loans", "error", err)
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	if len(loans) == 0 {
		return &ListLoansResult{Items: []LedgerItem{}, Total: total}, nil
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
		items = append(items, LedgerItem{Loan: l, Book: books[l.BookID()], User: users[l.UserID()]})
	}

	return &ListLoansResult{Items: items, Total: total}, nil
}
