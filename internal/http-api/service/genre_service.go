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

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	Create(ctx context.Context, actor authz.Actor, in dto.CreateGenreDTO) (*models.Genre, error)
	Update(ctx context.Context, actor authz.Actor, slug string, in dto.UpdateGenreDTO) (*models.Genre, error)
	Delete(ctx context.Context, actor authz.Actor, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
}

func NewGenreService(genres repository.GenreRepository) GenreService {
	return &genreService{genres: genres}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genres.List(ctx, search, page, pageSize)
}

func (s *genreService) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	g, err := s.genres.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("genre")
		}
		return nil, err
	}
	return g, nil
}

func (s *genreService) Create(ctx context.Context, actor authz.Actor, in dto.CreateGenreDTO) (*models.Genre, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceGenre, "") {
		return nil, apierr.PermissionDenied()
	}

	resolved, err := resolveSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}

	g := &models.Genre{Name: in.Name, Slug: resolved}
	if err := s.genres.Create(ctx, g); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("slug", "genre with this slug already exists")
		}
		return nil, err
	}
	return g, nil
}

func (s *genreService) Update(ctx context.Context, actor authz.Actor, slug string, in dto.UpdateGenreDTO) (*models.Genre, error) {
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceGenre, "") {
		return nil, apierr.PermissionDenied()
	}

	g, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Slug != nil {
		resolved, err := resolveSlug(g.Name, *in.Slug)
		if err != nil {
			return nil, err
		}
		g.Slug = resolved
	}

	if err := s.genres.Update(ctx, g); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("slug", "genre with this slug already exists")
		}
		return nil, err
	}
	return g, nil
}

func (s *genreService) Delete(ctx context.Context, actor authz.Actor, slug string) error {
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceGenre, "") {
		return apierr.PermissionDenied()
	}
	if err := s.genres.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("genre")
		}
		return err
	}
	return nil
}
