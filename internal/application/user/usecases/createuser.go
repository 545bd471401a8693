package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type CreateUserCommand struct {
	Principal authorization.Principal
	Name      string
	Email     string
	Password  string
	Role      string
}

type CreateUserResult struct {
	User *user.User
}

// CreateUserUseCase creates an account on behalf of an administrator.
// Unlike self-registration it may assign any role directly.
type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(cmd.Name, cmd.Email, hash, authorization.ParseUserRole(cmd.Role))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("user created by admin",
		"user_id", newUser.ID(),
		"role", newUser.Role().String(),
		"created_by", cmd.Principal.UserID)

	return &CreateUserResult{User: newUser}, nil
}
