package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type UpdateUserCommand struct {
	Principal authorization.Principal
	UserID    uint
	Name      string
	Email     string
	Password  string // optional
	Role      string // optional; empty keeps the current role
	Status    string // optional; empty keeps the current status
}

type UpdateUserResult struct {
	User *user.User
}

// UpdateUserUseCase edits another account. Admin accounts can only be
// edited by themselves, never by a fellow admin.
type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if account.IsAdmin() && account.ID() != cmd.Principal.UserID {
		return nil, errors.NewForbiddenError("admin accounts cannot be modified by other admins")
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

	if cmd.Role != "" {
		if err := account.ChangeRole(authorization.ParseUserRole(cmd.Role)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Status != "" {
		if err := account.ChangeStatus(user.Status(cmd.Status)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Infow("user updated", "user_id", account.ID(), "updated_by", cmd.Principal.UserID)

	return &UpdateUserResult{User: account}, nil
}
