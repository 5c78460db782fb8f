// File: internal/service/authentication.go
package service

import (
	"errors"

	"nadespensa/internal/model"
)

var ErrInvalidPassword = errors.New("invalid password")

// AuthenticateUser 驗證明文密碼，成功回傳使用者
func AuthenticateUser(h *PasswordHasher, user model.User, password string) (*model.User, error) {
	if user.PasswordHash == "" || !h.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}
	return &user, nil
}
