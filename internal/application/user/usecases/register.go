package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

// WelcomeMailer delivers the post-registration greeting. Send failures are
// logged and do not fail the registration.
type WelcomeMailer interface {
	SendWelcomeEmail(to, userName string) error
}

type RegisterCommand struct {
	Name      string
	Email     string
	Password  string
	Role      string
	AdminCode string
}

type RegisterResult struct {
	User *user.User
}

// RegisterUseCase creates a new account. Registering with the admin role
// requires the configured admin registration code.
type RegisterUseCase struct {
	userRepo  user.Repository
	hasher    user.PasswordHasher
	mailer    WelcomeMailer
	adminCode string
	logger    logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	mailer WelcomeMailer,
	adminCode string,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		mailer:    mailer,
		adminCode: adminCode,
		logger:    logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	role := authorization.ParseUserRole(cmd.Role)
	if role.IsAdmin() {
		if uc.adminCode == "" || cmd.AdminCode != uc.adminCode {
			return nil, errors.NewForbiddenError("invalid admin registration code")
		}
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

	newUser, err := user.NewUser(cmd.Name, cmd.Email, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendWelcomeEmail(newUser.Email(), newUser.Name()); err != nil {
			uc.logger.Warnw("failed to send welcome email", "user_id", newUser.ID(), "error", err)
		}
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "role", newUser.Role().String())

	return &RegisterResult{User: newUser}, nil
}
