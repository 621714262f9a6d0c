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

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, actor authz.Actor, in dto.CreateCategoryDTO) (*models.Category, error)
	Update(ctx context.Context, actor authz.Actor, slug string, in dto.UpdateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, actor authz.Actor, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categories.List(ctx, search, page, pageSize)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("category")
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, actor authz.Actor, in dto.CreateCategoryDTO) (*models.Category, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceCategory, "") {
		return nil, apierr.PermissionDenied()
	}

	resolved, err := resolveSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}

	c := &models.Category{Name: in.Name, Slug: resolved}
	if err := s.categories.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("slug", "category with this slug already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, actor authz.Actor, slug string, in dto.UpdateCategoryDTO) (*models.Category, error) {
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceCategory, "") {
		return nil, apierr.PermissionDenied()
	}

	c, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Slug != nil {
		resolved, err := resolveSlug(c.Name, *in.Slug)
		if err != nil {
			return nil, err
		}
		c.Slug = resolved
	}

	if err := s.categories.Update(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("slug", "category with this slug already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, actor authz.Actor, slug string) error {
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceCategory, "") {
		return apierr.PermissionDenied()
	}
	if err := s.categories.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("category")
		}
		return err
	}
	return nil
}
