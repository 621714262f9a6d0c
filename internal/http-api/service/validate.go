package service

import (
	"context"
	"errors"
	"regexp"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func validateUsername(username string) error {
	if username == models.ReservedUsername {
		return apierr.Validation("username", `using "me" as a username is not allowed`)
	}
	if !usernamePattern.MatchString(username) {
		return apierr.Validation("username", "username may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}

// checkIdentityTaken returns a ValidationError naming every identity field
// already held by a different user. excludeID skips the user being updated.
func checkIdentityTaken(ctx context.Context, users repository.UserRepository, username, email, excludeID string) error {
	fields := map[string]string{}

	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			fields["username"] = "a user with that username already exists"
		}
	}

	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			fields["email"] = "a user with that email already exists"
		}
	}

	if len(fields) > 0 {
		return &apierr.ValidationError{Fields: fields}
	}
	return nil
}
