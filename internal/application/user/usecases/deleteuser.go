package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/loan"
	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type DeleteUserCommand struct {
	Principal authorization.Principal
	UserID    uint
}

// DeleteUserUseCase removes an account. Blocked while the account holds
// active loans, for admin targets, and for self-deletion.
type DeleteUserUseCase struct {
	userRepo user.Repository
	loanRepo loan.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, loanRepo loan.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		loanRepo: loanRepo,
		logger:   logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if !cmd.Principal.IsAdmin() {
		return errors.NewForbiddenError("admin access required")
	}
	if cmd.UserID == cmd.Principal.UserID {
		return errors.NewUnprocessableError("cannot delete your own account")
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return errors.NewNotFoundError("user not found")
	}

	if account.IsAdmin() {
		return errors.NewForbiddenError("admin accounts cannot be deleted")
	}

	activeLoans, err := uc.loanRepo.ListActiveByUser(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to list active loans: %w", err)
	}
	if len(activeLoans) > 0 {
		return errors.NewUnprocessableError(
			fmt.Sprintf("user has %d active loans and cannot be deleted", len(activeLoans)))
	}

	if err := uc.userRepo.Delete(ctx, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Infow("user deleted", "user_id", cmd.UserID, "deleted_by", cmd.Principal.UserID)
	return nil
}
