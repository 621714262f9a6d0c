package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/authz"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, actor authz.Actor, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, actor authz.Actor, in dto.CreateUserDTO) (*models.User, error)
	GetByUsername(ctx context.Context, actor authz.Actor, username string) (*models.User, error)
	Update(ctx context.Context, actor authz.Actor, username string, in dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, actor authz.Actor, username string) error

	// self-profile; actor operates on its own row
	Profile(ctx context.Context, actor authz.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor authz.Actor, in dto.UpdateUserDTO) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, actor authz.Actor, search string, page, pageSize int) ([]models.User, int64, error) {
	if !authz.CanAct(actor, authz.ActionRead, authz.ResourceUser, "") {
		return nil, 0, apierr.PermissionDenied()
	}
	return s.users.List(ctx, search, page, pageSize)
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, in dto.CreateUserDTO) (*models.User, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceUser, "") {
		return nil, apierr.PermissionDenied()
	}

	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return nil, apierr.Validationf("role", "%q is not a valid role", in.Role)
	}
	if err := checkIdentityTaken(ctx, s.users, in.Username, in.Email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			if verr := checkIdentityTaken(ctx, s.users, in.Username, in.Email, ""); verr != nil {
				return nil, verr
			}
			return nil, apierr.Validation("username", "a user with that username already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, actor authz.Actor, username string) (*models.User, error) {
	if !authz.CanAct(actor, authz.ActionRead, authz.ResourceUser, "") {
		return nil, apierr.PermissionDenied()
	}
	return s.findUser(ctx, username)
}

func (s *userService) Update(ctx context.Context, actor authz.Actor, username string, in dto.UpdateUserDTO) (*models.User, error) {
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceUser, "") {
		return nil, apierr.PermissionDenied()
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, user, in, true)
}

func (s *userService) Delete(ctx context.Context, actor authz.Actor, username string) error {
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceUser, "") {
		return apierr.PermissionDenied()
	}
	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("user")
		}
		return err
	}
	return nil
}

func (s *userService) Profile(ctx context.Context, actor authz.Actor) (*models.User, error) {
	if !actor.Authenticated {
		return nil, apierr.Authentication("authentication required")
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets any authenticated actor edit their own row. A role
// supplied by a non-privileged actor is dropped, not rejected.
func (s *userService) UpdateProfile(ctx context.Context, actor authz.Actor, in dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}

	privileged := actor.Role == models.RoleAdmin || actor.Superuser
	if !privileged {
		in.Role = nil
	}
	return s.applyUpdate(ctx, user, in, privileged)
}

func (s *userService) applyUpdate(ctx context.Context, user *models.User, in dto.UpdateUserDTO, allowRole bool) (*models.User, error) {
	if in.Username != nil && *in.Username != user.Username {
		if err := validateUsername(*in.Username); err != nil {
			return nil, err
		}
		if err := checkIdentityTaken(ctx, s.users, *in.Username, "", user.ID); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := checkIdentityTaken(ctx, s.users, "", *in.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil && allowRole {
		if !in.Role.IsValid() {
			return nil, apierr.Validationf("role", "%q is not a valid role", *in.Role)
		}
		user.Role = *in.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			if verr := checkIdentityTaken(ctx, s.users, user.Username, user.Email, user.ID); verr != nil {
				return nil, verr
			}
			return nil, apierr.Validation("username", "a user with that username already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}
