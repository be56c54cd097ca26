package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth issues and verifies the bearer tokens the API accepts. The
// signing key and expiry window are injected at construction instead of
// living in a package global.
type TokenAuth struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewTokenAuth(key []byte, exp time.Duration) *TokenAuth {
	return &TokenAuth{
		auth: jwtauth.New("HS256", key, nil),
		exp:  exp,
	}
}

// JWTAuth exposes the underlying authority for jwtauth.Verifier.
func (t *TokenAuth) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

// GenerateToken signs a token carrying the user identity, expiring after the
// configured window.
func (t *TokenAuth) GenerateToken(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(t.exp).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
