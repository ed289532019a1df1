package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
)

const RoleAdmin = "admin"

type AuthToken struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func GenerateAuthToken(role string, ttl time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := &AuthToken{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("SignedString: %w", err)
	}
	return signed, nil
}

// ParseAuthToken verifies the HMAC signature and expiry. Any failure is
// reported as constants.ErrUnauthorized.
func ParseAuthToken(tokenString string, key []byte) (*AuthToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthToken{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseWithClaims: %s: %w", err.Error(), constants.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*AuthToken)
	if !ok || !token.Valid {
		return nil, constants.ErrUnauthorized
	}
	return claims, nil
}
