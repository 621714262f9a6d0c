package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/authz"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, actor authz.Actor, in dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, actor authz.Actor, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

func NewTitleService(titles repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
	}
}

// List attaches ratings from one grouped aggregate pass over the page of
// titles; no per-title rating query happens anywhere.
func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error) {
	titles, total, err := s.titles.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	ratings, err := s.titles.RatingsByTitleIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for _, t := range titles {
		resp = append(resp, dto.FromTitleModel(t, ratingFor(ratings, t.ID)))
	}
	return resp, total, nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("title")
		}
		return nil, err
	}

	ratings, err := s.titles.RatingsByTitleIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	resp := dto.FromTitleModel(*t, ratingFor(ratings, id))
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, actor authz.Actor, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceTitle, "") {
		return nil, apierr.PermissionDenied()
	}

	if err := validateYear(in.Year); err != nil {
		return nil, err
	}

	t := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != "" {
		category, err := s.resolveCategory(ctx, in.Category)
		if err != nil {
			return nil, err
		}
		t.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}
	t.Genres = genres

	if err := s.titles.Create(ctx, t); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, t.ID)
}

func (s *titleService) Update(ctx context.Context, actor authz.Actor, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceTitle, "") {
		return nil, apierr.PermissionDenied()
	}

	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("title")
		}
		return nil, err
	}

	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			t.CategoryID = nil
			t.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			t.CategoryID = &category.ID
			t.Category = category
		}
	}

	if err := s.titles.Update(ctx, t); err != nil {
		return nil, err
	}

	if in.Genre != nil {
		genres, err := s.resolveGenres(ctx, *in.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, t, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceTitle, "") {
		return apierr.PermissionDenied()
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title")
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Validationf("category", "unknown category slug %q", slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genres.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		var missing []string
		for _, slug := range slugs {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		return nil, apierr.Validationf("genre", "unknown genre slug(s): %s", strings.Join(missing, ", "))
	}
	return genres, nil
}

func validateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return apierr.Validationf("year", "year cannot be later than %d", current)
	}
	return nil
}

func ratingFor(ratings map[int64]float64, id int64) *float64 {
	if r, ok := ratings[id]; ok {
		return &r
	}
	return nil
}
