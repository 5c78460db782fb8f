// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"nadespensa/internal/api"
	"nadespensa/internal/database"
	"nadespensa/internal/model"
	"nadespensa/internal/service"
	"nadespensa/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler 建立新帳號，密碼以 bcrypt 雜湊後儲存
// @Summary     註冊使用者
// @Description 檢查欄位、密碼確認與 email 是否重複後建立帳號
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.MessageResponse
// @Failure     422  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, hasher *service.PasswordHasher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: api.ValidationMessage(err)})
		}
		if req.Password != req.ConfirmPassword {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "passwords do not match"})
		}

		ctx := c.Request().Context()
		email := strings.ToLower(strings.TrimSpace(req.Email))

		exists, err := userExistsByEmail(ctx, db, email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("register: lookup failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
		}
		if exists {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "email already in use"})
		}

		digest, err := hasher.Hash(req.Password)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "password is too long"})
			}
			log.Error().Err(err).Msg("register: hash failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
		}

		// 兩個同時註冊的請求可能都通過上面的檢查，由 unique index 擋下
		_, err = insertUser(ctx, db, &model.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: digest,
		})
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "email already in use"})
		case errors.Is(err, store.ErrValidation):
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		case err != nil:
			log.Error().Err(err).Str("email", email).Msg("register: insert failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "user created"})
	}
}
