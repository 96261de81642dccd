// file: internals/features/users/auth/service/token_service.go
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"zupsms_backend/internals/configs"
)

// durée de vie de l'access token; pas de refresh token, le dashboard
// redemande un login à l'expiration
const AccessTokenTTL = 24 * time.Hour

// CreateAccessToken signe un JWT HS256 avec sub = user id.
func CreateAccessToken(userID uuid.UUID, email string) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
