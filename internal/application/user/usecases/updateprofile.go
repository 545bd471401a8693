package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type UpdateProfileCommand struct {
	Principal authorization.Principal
	Name      string
	Email     string
	Password  string // optional; empty leaves the password unchanged
}

type UpdateProfileResult struct {
	User *user.User
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if cmd.Principal.IsZero() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.Principal.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.Principal.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if err := account.UpdateProfile(cmd.Name, cmd.Email); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Password != "" {
		hash, err := uc.hasher.Hash(cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := account.ChangePassword(hash); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Infow("profile updated", "user_id", account.ID())

	return &UpdateProfileResult{User: account}, nil
}
