package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/shared/logger"
)

type ListBooksResult struct {
	Items []CatalogItem
}

// CatalogItem pairs a catalog entry with the IDs of users currently holding
// copies of it.
type CatalogItem struct {
	Book        *book.Book
	BorrowerIDs []uint
}

// ListBooksUseCase returns the full catalog with availability and the
// current borrowers of each title.
type ListBooksUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	logger   logger.Interface
}

func NewListBooksUseCase(bookRepo book.Repository, loanRepo loan.Repository, logger logger.Interface) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		logger:   logger,
	}
}

func (uc *ListBooksUseCase) Execute(ctx context.Context) (*ListBooksResult, error) {
	books, err := uc.bookRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	activeLoans, err := uc.loanRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active loans", "error", err)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	borrowers := make(map[uint][]uint, len(books))
	seen := make(map[[2]uint]struct{}, len(activeLoans))
	for _, l := range activeLoans {
		key := [2]uint{l.BookID(), l.UserID()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		borrowers[l.BookID()] = append(borrowers[l.BookID()], l.UserID())
	}

	items := make([]CatalogItem, 0, len(books))
	for _, b := range books {
		items = append(items, CatalogItem{Book: b, BorrowerIDs: borrowers[b.ID()]})
	}

	return &ListBooksResult{Items: items}, nil
}
