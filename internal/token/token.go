// Package token issues and checks the two credentials the API hands out:
// the emailed confirmation code and the JWT access token it is exchanged for.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carried by an access token.
type Claims struct {
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	Superuser bool        `json:"superuser"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewIssuer(secret string, accessTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL}
}

// ConfirmationCode derives a code from the user's current state. It is
// deterministic on purpose: re-requesting signup without touching the user
// returns the same code, and any mutation of the row (updated_at moves)
// invalidates everything issued before. Not a bearer JWT — the emailed code
// must never double as an access credential.
func (i *Issuer) ConfirmationCode(user *models.User) string {
	state := fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%t\x00%d",
		user.ID,
		user.Username,
		user.Email,
		user.Role,
		user.IsSuperuser,
		user.UpdatedAt.UTC().UnixNano(),
	)
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(state))
	return hex.EncodeToString(mac.Sum(nil))[:40]
}

// CheckConfirmationCode reports whether code matches the user's current
// state. Constant-time compare.
func (i *Issuer) CheckConfirmationCode(user *models.User, code string) bool {
	expected := i.ConfirmationCode(user)
	return hmac.Equal([]byte(expected), []byte(code))
}

// AccessToken signs a JWT scoped to the user's identity.
func (i *Issuer) AccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseAccessToken validates the signature and expiry and returns the claims.
func (i *Issuer) ParseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
