package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/mail"
	"reviewhub/internal/token"

	"gorm.io/gorm"
)

// ErrBadConfirmationCode deliberately does not say whether the username or
// the code was wrong.
var ErrBadConfirmationCode = apierr.Authentication("invalid username or confirmation code")

type AuthService interface {
	Signup(ctx context.Context, username, email string) error
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	issuer *token.Issuer
	sender mail.Sender
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, issuer *token.Issuer, sender mail.Sender, logger *slog.Logger) AuthService {
	return &authService{
		users:  users,
		issuer: issuer,
		sender: sender,
		logger: logger,
	}
}

// Signup creates the user on first request and re-issues a confirmation code
// on every request for the same (username, email) pair. No pending state is
// kept anywhere: the code is derived from the user row itself.
func (s *authService) Signup(ctx context.Context, username, email string) error {
	user, err := s.users.FindByUsernameAndEmail(ctx, username, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user == nil {
		if err := validateUsername(username); err != nil {
			return err
		}
		if err := checkIdentityTaken(ctx, s.users, username, email, ""); err != nil {
			return err
		}

		if err := s.users.Create(ctx, &models.User{Username: username, Email: email, Role: models.RoleUser}); err != nil {
			if repository.IsUniqueViolation(err) {
				// lost the race against a concurrent signup; report it the
				// way the pre-check would have
				if verr := checkIdentityTaken(ctx, s.users, username, email, ""); verr != nil {
					return verr
				}
				return apierr.Validation("username", "a user with that username already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}

		// re-read so the code is bound to the stored row, timestamps included
		user, err = s.users.FindByUsernameAndEmail(ctx, username, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("user")
			}
			return err
		}
	}

	code := s.issuer.ConfirmationCode(user)
	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.sender.Send(user.Email, "Confirmation code", body); err != nil {
		s.logger.Error("confirmation mail dispatch failed", "username", username, "error", err)
		return fmt.Errorf("dispatch confirmation code: %w", err)
	}

	return nil
}

// IssueToken exchanges a valid (username, confirmation code) pair for an
// access token.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierr.NotFound("user")
		}
		return "", err
	}

	if !s.issuer.CheckConfirmationCode(user, confirmationCode) {
		return "", ErrBadConfirmationCode
	}

	signed, err := s.issuer.AccessToken(user)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
