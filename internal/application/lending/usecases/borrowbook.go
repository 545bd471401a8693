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

type BorrowBookCommand struct {
	Principal authorization.Principal
	BookID    uint
	Copies    int
	DueDate   time.Time // zero value falls back to the configured loan period
}

type BorrowBookResult struct {
	Book  *book.Book
	Loans []*loan.Loan
}

// BorrowBookUseCase reserves copies of a book for the caller. The whole
// read-validate-write sequence runs inside one transaction holding a row
// lock on the book, so two overlapping borrows of the last copy cannot
// both succeed.
type BorrowBookUseCase struct {
	bookRepo        book.Repository
	loanRepo        loan.Repository
	txManager       *db.TransactionManager
	maxLoanCopies   int
	defaultLoanDays int
	logger          logger.Interface
}

func NewBorrowBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager *db.TransactionManager,
	maxLoanCopies int,
	defaultLoanDays int,
	logger logger.Interface,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo:        bookRepo,
		loanRepo:        loanRepo,
		txManager:       txManager,
		maxLoanCopies:   maxLoanCopies,
		defaultLoanDays: defaultLoanDays,
		logger:          logger,
	}
}

func (uc *BorrowBookUseCase) Execute(ctx context.Context, cmd BorrowBookCommand) (*BorrowBookResult, error) {
	if cmd.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if cmd.Copies < 1 {
		return nil, errors.NewUnprocessableError("number of copies must be at least 1")
	}
	if uc.maxLoanCopies > 0 && cmd.Copies > uc.maxLoanCopies {
		return nil, errors.NewUnprocessableError(
			fmt.Sprintf("cannot borrow more than %d copies at once", uc.maxLoanCopies))
	}

	dueDate := cmd.DueDate
	if dueDate.IsZero() {
		dueDate = time.Now().AddDate(0, 0, uc.defaultLoanDays)
	}
	if !dueDate.After(time.Now()) {
		return nil, errors.NewUnprocessableError("due date must be in the future")
	}

	var result *BorrowBookResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.bookRepo.GetByIDForUpdate(txCtx, cmd.BookID)
		if err != nil {
			uc.logger.Errorw("failed to lock book for borrow", "book_id", cmd.BookID, "error", err)
			return fmt.Errorf("failed to get book: %w", err)
		}
		if target == nil {
			return book.NewNotFoundError(cmd.BookID)
		}

		if !target.CanBorrowCopies(cmd.Copies) {
			return book.NewInsufficientCopiesError(target.AvailableCopies())
		}

		activeCopies, err := uc.loanRepo.CountActiveByUserAndBook(txCtx, cmd.Principal.UserID, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if activeCopies > 0 {
			return loan.NewAlreadyBorrowedError(activeCopies)
		}

		loans := make([]*loan.Loan, 0, cmd.Copies)
		for i := 0; i < cmd.Copies; i++ {
			l, err := loan.NewLoan(cmd.Principal.UserID, cmd.BookID, dueDate)
			if err != nil {
				return errors.NewUnprocessableError(err.Error())
			}
			loans = append(loans, l)
		}

		if err := uc.loanRepo.CreateBatch(txCtx, loans); err != nil {
			return fmt.Errorf("failed to create loans: %w", err)
		}

		if err := target.BorrowCopies(cmd.Copies); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(txCtx, target); err != nil {
			return fmt.Errorf("failed to update book availability: %w", err)
		}

		result = &BorrowBookResult{Book: target, Loans: loans}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("book borrowed",
		"book_id", cmd.BookID,
		"user_id", cmd.Principal.UserID,
		"copies", cmd.Copies,
		"available", result.Book.AvailableCopies())

	return result, nil
}
