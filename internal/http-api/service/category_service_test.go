package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCategoryCreate_SlugDerivedFromName(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Slug == "graphic-novels"
	})).Return(nil)

	c, err := svc.Create(context.Background(), adminActor, dto.CreateCategoryDTO{Name: "Graphic Novels"})

	assert.NoError(t, err)
	assert.Equal(t, "graphic-novels", c.Slug)
	categories.AssertExpectations(t)
}

func TestCategoryCreate_BadSlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	_, err := svc.Create(context.Background(), adminActor, dto.CreateCategoryDTO{
		Name: "Books",
		Slug: "Not A Slug!",
	})

	assert.True(t, apierr.IsValidation(err))
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), adminActor, dto.CreateCategoryDTO{Name: "Books", Slug: "book"})

	assert.True(t, apierr.IsValidation(err))
}

func TestCategoryCreate_NonAdminForbidden(t *testing.T) {
	svc := NewCategoryService(new(MockCategoryRepository))

	_, err := svc.Create(context.Background(), moderator, dto.CreateCategoryDTO{Name: "Books"})

	var pe *apierr.PermissionError
	assert.ErrorAs(t, err, &pe)
}

func TestCategoryGet_Unknown(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	categories.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBySlug(context.Background(), "nope")

	assert.True(t, apierr.IsNotFound(err))
}

func TestGenreDelete_PlainUserForbidden(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres)

	err := svc.Delete(context.Background(), reviewAuthor, "sci-fi")

	var pe *apierr.PermissionError
	assert.ErrorAs(t, err, &pe)
	genres.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGenreCreate_Superuser(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres)

	superuser := adminActor
	superuser.Role = models.RoleUser
	superuser.Superuser = true

	genres.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).Return(nil)

	g, err := svc.Create(context.Background(), superuser, dto.CreateGenreDTO{Name: "Sci-Fi"})

	assert.NoError(t, err)
	assert.Equal(t, "sci-fi", g.Slug)
}
