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

type RepairAvailabilityCommand struct {
	Principal authorization.Principal
	BookID    uint
}

type RepairAvailabilityResult struct {
	Book        *book.Book
	Previous    int
	Current     int
	ActiveLoans int
	Drifted     bool
}

// RepairAvailabilityUseCase rebuilds a book's available counter from the
// loan ledger. The ledger is the source of truth; the counter is a cache
// that can drift after manual data edits or partial failures. Admin only.
type RepairAvailabilityUseCase struct {
	bookRepo  book.Repository
	loanRepo  loan.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewRepairAvailabilityUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *RepairAvailabilityUseCase {
	return &RepairAvailabilityUseCase{
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RepairAvailabilityUseCase) Execute(ctx context.Context, cmd RepairAvailabilityCommand) (*RepairAvailabilityResult, error) {
	if cmd.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	var result *RepairAvailabilityResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.bookRepo.GetByIDForUpdate(txCtx, cmd.BookID)
		if err != nil {
			uc.logger.Errorw("failed to lock book for repair", "book_id", cmd.BookID, "error", err)
			return fmt.Errorf("failed to get book: %w", err)
		}
		if target == nil {
			return book.NewNotFoundError(cmd.BookID)
		}

		activeLoans, err := uc.loanRepo.CountActiveByBook(txCtx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}

		previous, drifted := target.Repair(activeLoans)
		if drifted {
			if err := uc.bookRepo.Update(txCtx, target); err != nil {
				return fmt.Errorf("failed to update book availability: %w", err)
			}
		}

		result = &RepairAvailabilityResult{
			Book:        target,
			Previous:    previous,
			Current:     target.AvailableCopies(),
			ActiveLoans: activeLoans,
			Drifted:     drifted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Drifted {
		uc.logger.Warnw("availability counter repaired",
			"book_id", cmd.BookID,
			"previous", result.Previous,
			"current", result.Current,
			"active_loans", result.ActiveLoans)
	}

	return result, nil
}
