// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"nadespensa/internal/api"
	"nadespensa/internal/database"
	"nadespensa/internal/service"
	"nadespensa/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// LoginHandler 使用 Email/Password 驗證並回傳 bearer token
// @Summary     登入使用者
// @Description 使用 email 與密碼進行驗證，回傳不會過期的存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     422  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, hasher *service.PasswordHasher, tokens *service.TokenService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: api.ValidationMessage(err)})
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := findUserByEmail(c.Request().Context(), db, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "user not found"})
			}
			log.Error().Err(err).Str("email", email).Msg("login: lookup failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
		}

		authUser, err := service.AuthenticateUser(hasher, *user, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid password"})
		}

		token, err := tokens.Issue(authUser.ID)
		if err != nil {
			log.Error().Err(err).Msg("login: issue token failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{Message: "authenticated", Token: token})
	}
}
