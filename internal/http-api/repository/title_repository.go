package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilter carries the supported list filters. Zero values mean "no
// filter".
type TitleFilter struct {
	GenreSlug    string
	CategorySlug string
	Name         string
	Year         *int
}

type TitleRepository interface {
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error
	RatingsByTitleIDs(ctx context.Context, ids []int64) (map[int64]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

var _ TitleRepository = (*titleRepository)(nil)

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	// Omit the association here; genre sets are replaced explicitly via
	// ReplaceGenres so a partial update can't wipe them.
	if err := r.db.WithContext(ctx).Omit("Genres").Save(t).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).Preload("Genres").Preload("Category").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	// each pass builds its own chain; Count rewrites the select clause and
	// would otherwise leak into the Find
	if err := r.filtered(ctx, filter).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.filtered(ctx, filter).
		Distinct("titles.*").
		Preload("Genres").
		Preload("Category").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	return list, total, nil
}

func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles gt ON gt.title_id = titles.id").
			Joins("JOIN genres g ON g.id = gt.genre_id").
			Where("g.slug = ?", filter.GenreSlug)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	return q
}

// ReplaceGenres swaps the title's genre set wholesale.
func (r *titleRepository) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(t).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	return nil
}

// RatingsByTitleIDs computes the average review score for every requested
// title in a single grouped pass. Titles with no reviews simply have no entry
// in the result, which the service renders as a null rating.
func (r *titleRepository) RatingsByTitleIDs(ctx context.Context, ids []int64) (map[int64]float64, error) {
	ratings := make(map[int64]float64, len(ids))
	if len(ids) == 0 {
		return ratings, nil
	}

	var rows []struct {
		TitleID int64
		Rating  float64
	}
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate title ratings: %w", err)
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}
