package handler

import (
	"context"
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes expects rg rooted at
// /titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:comment_id", h.Get)

	rg.POST("/", authRequired, h.Create)
	rg.PATCH("/:comment_id", authRequired, h.Update)
	rg.DELETE("/:comment_id", authRequired, h.Delete)
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := nestedIDs(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.svc.ListByReview(ctx, titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, dto.FromCommentModel(m))
	}
	c.JSON(http.StatusOK, paginated(resp, page, pageSize, total))
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := nestedIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.svc.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCommentModel(*comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := nestedIDs(c)
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.svc.Create(ctx, middleware.ActorFromContext(c), titleID, reviewID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromCommentModel(*comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := nestedIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.svc.Update(ctx, middleware.ActorFromContext(c), titleID, reviewID, commentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCommentModel(*comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := nestedIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.ActorFromContext(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func nestedIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
