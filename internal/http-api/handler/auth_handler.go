package handler

import (
	"context"
	"errors"
	"net/http"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterRoutes wires the two unauthenticated auth endpoints. rateLimit is
// applied here rather than globally: these are the only endpoints that send
// mail or mint credentials.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	rg.POST("/signup", rateLimit, h.Signup)
	rg.POST("/token", rateLimit, h.Token)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var in dto.SignupRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Signup(ctx, in.Username, in.Email); err != nil {
		respondError(c, err)
		return
	}

	// 200 rather than 201: repeating the same pair re-sends the code and is
	// not a new resource
	c.JSON(http.StatusOK, dto.SignupResponse{Username: in.Username, Email: in.Email})
}

func (h *AuthHandler) Token(c *gin.Context) {
	var in dto.TokenRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	signed, err := h.svc.IssueToken(ctx, in.Username, in.ConfirmationCode)
	if err != nil {
		// a wrong code on this endpoint is a bad request, not a challenge to
		// re-authenticate: there is no credential to present differently
		var ae *apierr.AuthError
		if errors.As(err, &ae) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ae.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: signed})
}
