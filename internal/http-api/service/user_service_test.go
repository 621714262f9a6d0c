package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/authz"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var adminActor = authz.Actor{ID: "u-admin", Role: models.RoleAdmin, Authenticated: true}

func rolePtr(r models.Role) *models.Role { return &r }

func TestUserList_NonAdminForbidden(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	for _, actor := range []authz.Actor{authz.Anonymous, reviewAuthor, moderator} {
		_, _, err := svc.List(context.Background(), actor, "", 1, 20)

		var pe *apierr.PermissionError
		assert.ErrorAs(t, err, &pe)
	}
	users.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserCreate_AdminWithRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "newmod").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", mock.Anything, "mod@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), adminActor, dto.CreateUserDTO{
		Username: "newmod",
		Email:    "mod@example.com",
		Role:     models.RoleModerator,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	users.AssertExpectations(t)
}

func TestUserCreate_InvalidRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	_, err := svc.Create(context.Background(), adminActor, dto.CreateUserDTO{
		Username: "someone",
		Email:    "someone@example.com",
		Role:     models.Role("owner"),
	})

	assert.True(t, apierr.IsValidation(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// A plain user patching /users/me with a role change keeps their old role;
// the field is ignored rather than rejected.
func TestUpdateProfile_RolePatchDiscarded(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	self := &models.User{ID: "u-author", Username: "reader", Email: "reader@example.com", Role: models.RoleUser}
	users.On("FindByID", mock.Anything, "u-author").Return(self, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), reviewAuthor, dto.UpdateUserDTO{
		Bio:  strPtr("hello"),
		Role: rolePtr(models.RoleAdmin),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "hello", user.Bio)
}

func TestUpdateProfile_AdminKeepsRoleChange(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	self := &models.User{ID: "u-admin", Username: "boss", Email: "boss@example.com", Role: models.RoleAdmin}
	users.On("FindByID", mock.Anything, "u-admin").Return(self, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), adminActor, dto.UpdateUserDTO{
		Role: rolePtr(models.RoleModerator),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestUserUpdate_UsernameToReserved(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	existing := &models.User{ID: "u-1", Username: "reader", Email: "reader@example.com"}
	users.On("FindByUsername", mock.Anything, "reader").Return(existing, nil)

	_, err := svc.Update(context.Background(), adminActor, "reader", dto.UpdateUserDTO{
		Username: strPtr("me"),
	})

	assert.True(t, apierr.IsValidation(err))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserDelete_Unknown(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("Delete", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), adminActor, "ghost")

	assert.True(t, apierr.IsNotFound(err))
}

func TestProfile_Anonymous(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	_, err := svc.Profile(context.Background(), authz.Anonymous)

	var ae *apierr.AuthError
	assert.ErrorAs(t, err, &ae)
}
