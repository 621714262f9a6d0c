package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"reviewhub/internal/http-api/apierr"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// respondError translates service-layer errors into HTTP responses. Anything
// without a known type is a 500 and gets logged instead of leaked.
func respondError(c *gin.Context, err error) {
	var nf *apierr.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}

	var ve *apierr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
		return
	}

	var pe *apierr.PermissionError
	if errors.As(err, &pe) {
		c.JSON(http.StatusForbidden, gin.H{"error": pe.Error()})
		return
	}

	var ae *apierr.AuthError
	if errors.As(err, &ae) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ae.Error()})
		return
	}

	slog.Error("unhandled error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// pagination parses page/page_size query params with the defaults and cap
// shared by every list endpoint.
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

func paginated(data any, page, pageSize int, total int64) gin.H {
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
