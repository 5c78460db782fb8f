// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

var parseWithClaims = jwt.ParseWithClaims

// Claims carries the user id as the only claim. No exp/iat is set, so a token
// stays valid until the secret changes.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService 以 HS256 簽發與驗證 bearer token
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret not set")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue 產生綁定 userID 的 JWT
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})
	return token.SignedString(s.secret)
}

// Verify 驗證簽章並回傳 userID；任何失敗都包裝成 ErrInvalidToken
func (s *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := &Claims{}
	token, err := parseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
