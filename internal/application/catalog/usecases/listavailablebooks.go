package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/shared/logger"
)

type ListAvailableBooksResult struct {
	Books []*book.Book
}

// ListAvailableBooksUseCase returns catalog entries with at least one copy
// available for borrowing.
type ListAvailableBooksUseCase struct {
	bookRepo book.Repository
	logger   logger.Interface
}

func NewListAvailableBooksUseCase(bookRepo book.Repository, logger logger.Interface) *ListAvailableBooksUseCase {
	return &ListAvailableBooksUseCase{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

func (uc *ListAvailableBooksUseCase) Execute(ctx context.Context) (*ListAvailableBooksResult, error) {
	books, err := uc.bookRepo.ListAvailable(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list available books", "error", err)
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}

	return &ListAvailableBooksResult{Books: books}, nil
}
