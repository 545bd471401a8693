package usecases

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"libris/internal/domain/book"
	"libris/internal/shared/authorization"
	"libris/internal/shared/db"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type UpdateBookCommand struct {
	Principal   authorization.Principal
	BookID      uint
	Title       string
	Author      string
	Publisher   string
	ISBN        string
	Description string
	Tags        []string
	TotalCopies int
}

type UpdateBookResult struct {
	Book *book.Book
}

// UpdateBookUseCase edits a catalog entry. Changing total_copies re-derives
// the available counter by the delta under the book row lock, so a stock
// change cannot race a concurrent borrow.
type UpdateBookUseCase struct {
	bookRepo  book.Repository
	txManager *db.TransactionManager
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewUpdateBookUseCase(bookRepo book.Repository, txManager *db.TransactionManager, logger logger.Interface) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, cmd UpdateBookCommand) (*UpdateBookResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	var result *UpdateBookResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.bookRepo.GetByIDForUpdate(txCtx, cmd.BookID)
		if err != nil {
			uc.logger.Errorw("failed to lock book for update", "book_id", cmd.BookID, "error", err)
			return fmt.Errorf("failed to get book: %w", err)
		}
		if target == nil {
			return book.NewNotFoundError(cmd.BookID)
		}

		description := uc.sanitizer.Sanitize(cmd.Description)
		if err := target.UpdateDetails(cmd.Title, cmd.Author, cmd.Publisher, cmd.ISBN, description, cmd.Tags); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if cmd.TotalCopies > 0 {
			if err := target.AdjustTotalCopies(cmd.TotalCopies); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if err := uc.bookRepo.Update(txCtx, target); err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		result = &UpdateBookResult{Book: target}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("book updated", "book_id", cmd.BookID, "total", result.Book.TotalCopies(), "available", result.Book.AvailableCopies())

	return result, nil
}
