package usecases

import (
	"context"
	"fmt"
	"time"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/domain/user"
	"libris/internal/shared/logger"
)

type NotifyOverdueLoansResult struct {
	Scanned  int
	Notified int
	Failed   int
}

// NotifyOverdueLoansUseCase scans the ledger for loans past their due date
// and emails the borrowers. Reads happen first; mail goes out afterwards so
// a slow SMTP server never holds database resources.
type NotifyOverdueLoansUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	userRepo user.Repository
	notifier OverdueNotifier
	logger   logger.Interface
}

func NewNotifyOverdueLoansUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	userRepo user.Repository,
	notifier OverdueNotifier,
	logger logger.Interface,
) *NotifyOverdueLoansUseCase {
	return &NotifyOverdueLoansUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *NotifyOverdueLoansUseCase) Execute(ctx context.Context) (*NotifyOverdueLoansResult, error) {
	now := time.Now()

	overdue, err := uc.loanRepo.ListOverdue(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to list overdue loans", "error", err)
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	result := &NotifyOverdueLoansResult{Scanned: len(overdue)}
	if len(overdue) == 0 {
		return result, nil
	}

	bookIDs := make([]uint, 0, len(overdue))
	userIDs := make([]uint, 0, len(overdue))
	seenBooks := make(map[uint]struct{}, len(overdue))
	seenUsers := make(map[uint]struct{}, len(overdue))
	for _, l := range overdue {
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
		return nil, fmt.Errorf("failed to get books for overdue loans: %w", err)
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for overdue loans: %w", err)
	}

	for _, l := range overdue {
		borrower := users[l.UserID()]
		title := books[l.BookID()]
		if borrower == nil || title == nil {
			continue
		}

		if err := uc.notifier.SendOverdueNotice(borrower.Email(), borrower.Name(), title.Title(), l.DueDate()); err != nil {
			result.Failed++
			uc.logger.Warnw("failed to send overdue notice",
				"loan_id", l.ID(),
				"user_id", l.UserID(),
				"error", err)
			continue
		}
		result.Notified++
	}

	uc.logger.Infow("overdue scan completed",
		"scanned", result.Scanned,
		"notified", result.Notified,
		"failed", result.Failed)

	return result, nil
}
