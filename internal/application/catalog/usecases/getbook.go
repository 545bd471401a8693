package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/shared/logger"
)

type GetBookQuery struct {
	BookID uint
}

type GetBookResult struct {
	Book *book.Book
}

type GetBookUseCase struct {
	bookRepo book.Repository
	logger   logger.Interface
}

func NewGetBookUseCase(bookRepo book.Repository, logger logger.Interface) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, query GetBookQuery) (*GetBookResult, error) {
	target, err := uc.bookRepo.GetByID(ctx, query.BookID)
	if err != nil {
		uc.logger.Errorw("failed to get book", "book_id", query.BookID, "error", err)
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if target == nil {
		return nil, book.NewNotFoundError(query.BookID)
	}

	return &GetBookResult{Book: target}, nil
}
