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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor authz.Actor, titleID, reviewID int64, in dto.CreateCommentDTO) (*models.Comment, error)
	Update(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.findComment(ctx, reviewID, commentID)
}

func (s *commentService) Create(ctx context.Context, actor authz.Actor, titleID, reviewID int64, in dto.CreateCommentDTO) (*models.Comment, error) {
	if !authz.CanAct(actor, authz.ActionCreate, authz.ResourceComment, "") {
		return nil, apierr.PermissionDenied()
	}
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: actor.ID,
		ReviewID: reviewID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.findComment(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.findComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.ActionUpdate, authz.ResourceComment, comment.AuthorID) {
		return nil, apierr.PermissionDenied()
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64) error {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.findComment(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if !authz.CanAct(actor, authz.ActionDelete, authz.ResourceComment, comment.AuthorID) {
		return apierr.PermissionDenied()
	}
	return s.comments.Delete(ctx, commentID)
}

// resolveReview walks the nesting: the review must exist under the given
// title, otherwise every comment below it reads as absent too.
func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.GetByID(ctx, reviewID, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("review")
		}
		return err
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("comment")
		}
		return nil, err
	}
	return comment, nil
}
