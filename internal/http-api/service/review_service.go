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

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor authz.Actor, titleID int64, in dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, actor authz.Actor, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, actor authz.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.findReview(ctx, titleID, reviewID)
}

// Create enforces the one-review-per-author-per-title rule. The existence
// check is only the friendly fast path; if two requests race past it, the
// unique constraint on (title_id, author_id) decides and the loser gets the
// same validation error.
func (s *reviewService) Create(ctx context.Context, actor authz.Actor, titleID int64, in dto.CreateReviewDTO) (*models.Review, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceReview, "") {
		return nil, apierr.PermissionDenied()
	}
	if err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Validation("review", "duplicate review not allowed")
	}

	// title, author and pub_date are server-derived; nothing the client sent
	// beyond text and score survives into the row
	review := &models.Review{
		Text:     in.Text,
		Score:    in.Score,
		AuthorID: actor.ID,
		TitleID:  titleID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("review", "duplicate review not allowed")
		}
		return nil, err
	}

	return s.findReview(ctx, titleID, review.ID)
}

// Update modifies the existing singleton, so the duplicate check does not
// apply here.
func (s *reviewService) Update(ctx context.Context, actor authz.Actor, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error) {
	if err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceReview, review.AuthorID) {
		return nil, apierr.PermissionDenied()
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if *in.Score < 1 || *in.Score > 10 {
			return nil, apierr.Validation("score", "score must be between 1 and 10")
		}
		review.Score = *in.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor authz.Actor, titleID, reviewID int64) error {
	if err := s.resolveTitle(ctx, titleID); err != nil {
		return err
	}
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceReview, review.AuthorID) {
		return apierr.PermissionDenied()
	}
	return s.reviews.Delete(ctx, reviewID)
}

func (s *reviewService) resolveTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title")
		}
		return err
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID, titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("review")
		}
		return nil, err
	}
	return review, nil
}
