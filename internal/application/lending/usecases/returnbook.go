package usecases

import (
	"context"
	"fmt"
	"time"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/shared/authorization"
	"libris/internal/shared/db"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type ReturnBookCommand struct {
	Principal authorization.Principal
	BookID    uint
}

type ReturnBookResult struct {
	Book *book.Book
	Loan *loan.Loan
}

// ReturnBookUseCase closes the caller's oldest active loan for a book and
// releases the copy back into the available pool. Runs under the same book
// row lock as borrowing.
type ReturnBookUseCase struct {
	bookRepo  book.Repository
	loanRepo  loan.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewReturnBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *ReturnBookUseCase) Execute(ctx context.Context, cmd ReturnBookCommand) (*ReturnBookResult, error) {
	if cmd.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	var result *ReturnBookResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.bookRepo.GetByIDForUpdate(txCtx, cmd.BookID)
		if err != nil {
			uc.logger.Errorw("failed to lock book for return", "book_id", cmd.BookID, "error", err)
			return fmt.Errorf("failed to get book: %w", err)
		}
		if target == nil {
			return book.NewNotFoundError(cmd.BookID)
		}

		active, err := uc.loanRepo.GetActiveByUserAndBook(txCtx, cmd.Principal.UserID, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to get active loan: %w", err)
		}
		if active == nil {
			return loan.NewNotBorrowedError()
		}

		if err := active.MarkReturned(time.Now()); err != nil {
			return errors.NewUnprocessableError(err.Error())
		}
		if err := uc.loanRepo.Update(txCtx, active); err != nil {
			return fmt.Errorf("failed to update loan: %w", err)
		}

		if err := target.ReturnCopy(); err != nil {
			// Counter already at total: rebuild it from the ledger instead of
			// pushing it out of range.
			activeCount, cntErr := uc.loanRepo.CountActiveByBook(txCtx, cmd.BookID)
			if cntErr != nil {
				return fmt.Errorf("failed to count active loans: %w", cntErr)
			}
			previous, drifted := target.Repair(activeCount)
			uc.logger.Warnw("availability counter repaired during return",
				"book_id", cmd.BookID,
				"previous", previous,
				"current", target.AvailableCopies(),
				"drifted", drifted)
		}
		if err := uc.bookRepo.Update(txCtx, target); err != nil {
			return fmt.Errorf("failed to update book availability: %w", err)
		}

		result = &ReturnBookResult{Book: target, Loan: active}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("book returned",
		"book_id", cmd.BookID,
		"user_id", cmd.Principal.UserID,
		"loan_id", result.Loan.ID(),
		"available", result.Book.AvailableCopies())

	return result, nil
}
