package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type GetProfileQuery struct {
	Principal authorization.Principal
}

type GetProfileResult struct {
	User *user.User
}

type GetProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*GetProfileResult, error) {
	if query.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	account, err := uc.userRepo.GetByID(ctx, query.Principal.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", query.Principal.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	return &GetProfileResult{User: account}, nil
}
