package usecases

import (
	"context"
	"fmt"

	"libris/internal/domain/user"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole) (string, error)
	AccessExpMinutes() int
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        *user.User
	AccessToken string
	ExpiresIn   int64
}

// LoginUseCase verifies credentials and issues an access token. Invalid
// email and invalid password return the same error so the endpoint does not
// leak which accounts exist.
type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	issuer   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	issuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	account, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if err := account.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("login failed", "user_id", account.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if !account.IsActive() {
		return nil, errors.NewForbiddenError("account is inactive")
	}

	token, err := uc.issuer.Generate(account.ID(), account.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate access token", "user_id", account.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", account.ID())

	return &LoginResult{
		User:        account,
		AccessToken: token,
		ExpiresIn:   int64(uc.issuer.AccessExpMinutes()) * 60,
	}, nil
}
