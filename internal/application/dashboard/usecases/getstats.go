package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type GetStatsQuery struct {
	Principal authorization.Principal
}

type GetStatsResult struct {
	TotalBooks     int64
	TotalUsers     int64
	AvailableBooks int64
	BorrowedBooks  int64
}

// GetStatsUseCase aggregates the headline counters for the admin dashboard.
// BorrowedBooks counts active loan rows, one per copy out.
type GetStatsUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetStatsUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetStatsUseCase {
	return &GetStatsUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, query GetStatsQuery) (*GetStatsResult, error) {
	if !query.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	totalBooks, err := uc.bookRepo.Count(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count books", "error", err)
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	availableBooks, err := uc.bookRepo.CountAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count available books: %w", err)
	}

	totalUsers, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	borrowedBooks, err := uc.loanRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}

	return &GetStatsResult{
		TotalBooks:     totalBooks,
		TotalUsers:     totalUsers,
		AvailableBooks: availableBooks,
		BorrowedBooks:  borrowedBooks,
	}, nil
}
