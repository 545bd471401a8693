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

type DeleteLoanCommand struct {
	Principal authorization.Principal
	LoanID    uint
}

// DeleteLoanUseCase removes a ledger row. Deleting an active loan releases
// its copy, so the book counter is adjusted in the same transaction to keep
// the availability invariant intact.
type DeleteLoanUseCase struct {
	bookRepo  book.Repository
	loanRepo  loan.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewDeleteLoanUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *DeleteLoanUseCase) Execute(ctx context.Context, cmd DeleteLoanCommand) error {
	if !cmd.Principal.IsAdmin() {
		return errors.NewForbiddenError("admin access required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.loanRepo.GetByID(txCtx, cmd.LoanID)
		if err != nil {
			return fmt.Errorf("failed to get loan: %w", err)
		}
		if target == nil {
			return loan.NewNotFoundError(cmd.LoanID)
		}

		if target.IsActive() {
			lockedBook, err := uc.bookRepo.GetByIDForUpdate(txCtx, target.BookID())
			if err != nil {
				return fmt.Errorf("failed to lock book: %w", err)
			}
			// The book may be gone while history rows remain; nothing to adjust then.
			if lockedBook != nil {
				if err := lockedBook.ReturnCopy(); err != nil {
					activeCount, cntErr := uc.loanRepo.CountActiveByBook(txCtx, target.BookID())
					if cntErr != nil {
						return fmt.Errorf("failed to count active loans: %w", cntErr)
					}
					// The row being deleted no longer counts as out.
					lockedBook.Repair(activeCount - 1)
				}
				if err := uc.bookRepo.Update(txCtx, lockedBook); err != nil {
					return fmt.Errorf("failed to update book availability: %w", err)
				}
			}
		}

		return uc.loanRepo.Delete(txCtx, cmd.LoanID)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("loan deleted", "loan_id", cmd.LoanID)
	return nil
}
