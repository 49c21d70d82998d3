package jwt

import (
	"errors"
	"fmt"
	"time"

	"linkup/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "typ" claim. The auth middleware only accepts
// access tokens; the refresh endpoint only accepts refresh tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateAccessToken creates a short-lived access token for a given user ID.
func GenerateAccessToken(userID uint) (string, error) {
	ttl := time.Duration(config.AppConfig.AccessTokenTTLMin) * time.Minute
	return generateToken(userID, TokenTypeAccess, ttl)
}

// GenerateTokenPair creates an access/refresh token pair for a given user ID.
func GenerateTokenPair(userID uint) (access string, refresh string, err error) {
	access, err = GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}

	refreshTTL := time.Duration(config.AppConfig.RefreshTokenTTLHours) * time.Hour
	refresh, err = generateToken(userID, TokenTypeRefresh, refreshTTL)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func generateToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": tokenType,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseToken validates a token of the expected type and returns the user ID
// it was issued for.
func ParseToken(tokenString, wantType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	if typ, _ := claims["typ"].(string); typ != wantType {
		return 0, ErrInvalidToken
	}

	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return uint(userIDFloat), nil
}
