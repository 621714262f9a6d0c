package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/http-api/authz"
	"reviewhub/internal/token"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthRequired is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization
// header and stores the resulting actor in the request context.
func AuthRequired(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromHeader(c, issuer)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// AuthOptional resolves the actor when a valid bearer token is present but
// lets anonymous requests through. Handlers that serve public reads with
// extra behavior for signed-in users hang off this one.
func AuthOptional(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := actorFromHeader(c, issuer); ok {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor stored by AuthRequired or
// AuthOptional, falling back to the anonymous actor when none was set.
func ActorFromContext(c *gin.Context) authz.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(authz.Actor); ok {
			return actor
		}
	}
	return authz.Anonymous
}

func actorFromHeader(c *gin.Context, issuer *token.Issuer) (authz.Actor, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return authz.Anonymous, false
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return authz.Anonymous, false
	}

	claims, err := issuer.ParseAccessToken(parts[1])
	if err != nil {
		return authz.Anonymous, false
	}

	return authz.Actor{
		ID:            claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
		Superuser:     claims.Superuser,
		Authenticated: true,
	}, true
}
