package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bandbook/internal/model"
)

// TokenExpiry is the session token lifetime. Cookie max-age mirrors it.
const TokenExpiry = 7 * 24 * time.Hour

// Claims represents the session token payload.
type Claims struct {
	UserID uint       `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and resolves signed session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue encodes the user's id and role into a signed, time-limited token.
func (s *JWTService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve verifies signature and expiry and returns the claims, or nil
// on any failure. A missing, malformed, expired or forged token all
// collapse into the same anonymous state; callers must treat nil as a
// valid unauthenticated request, not an error.
func (s *JWTService) Resolve(tokenString string) *Claims {
	if tokenString == "" {
		return nil
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil
	}
	return claims
}
