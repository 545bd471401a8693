package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/shared/authorization"
	"libris/internal/shared/db"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type DeleteBookCommand struct {
	Principal authorization.Principal
	BookID    uint
}

// DeleteBookUseCase removes a title from the catalog. Deletion is blocked
// while any copy is still out. With preserveHistory the row is soft-deleted
// and the loan ledger stays intact; otherwise the row is hard-deleted and
// its loan history cascades.
type DeleteBookUseCase struct {
	bookRepo        book.Repository
	loanRepo        loan.Repository
	txManager       *db.TransactionManager
	preserveHistory bool
	logger          logger.Interface
}

func NewDeleteBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager *db.TransactionManager,
	preserveHistory bool,
	logger logger.Interface,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:        bookRepo,
		loanRepo:        loanRepo,
		txManager:       txManager,
		preserveHistory: preserveHistory,
		logger:          logger,
	}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, cmd DeleteBookCommand) error {
	if !cmd.Principal.IsAdmin() {
		return errors.NewForbiddenError("admin access required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.bookRepo.GetByIDForUpdate(txCtx, cmd.BookID)
		if err != nil {
			uc.logger.Errorw("failed to lock book for delete", "book_id", cmd.BookID, "error", err)
			return fmt.Errorf("failed to get book: %w", err)
		}
		if target == nil {
			return book.NewNotFoundError(cmd.BookID)
		}

		activeLoans, err := uc.loanRepo.CountActiveByBook(txCtx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if activeLoans > 0 {
			return book.NewHasActiveLoansError(activeLoans)
		}

		if uc.preserveHistory {
			return uc.bookRepo.Delete(txCtx, cmd.BookID)
		}

		if err := uc.loanRepo.DeleteByBook(txCtx, cmd.BookID); err != nil {
			return fmt.Errorf("failed to delete loan history: %w", err)
		}
		return uc.bookRepo.HardDelete(txCtx, cmd.BookID)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("book deleted", "book_id", cmd.BookID, "preserve_history", uc.preserveHistory)
	return nil
}
