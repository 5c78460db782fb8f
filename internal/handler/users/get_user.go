// File: internal/handler/users/get_user.go
package users

import (
	"errors"
	"net/http"

	"nadespensa/internal/api"
	"nadespensa/internal/database"
	"nadespensa/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var findUserByID = store.FindUserByID

// GetUserHandler 透過使用者 ID 取得使用者資訊（不含密碼）
// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者資料，密碼雜湊不會回傳
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     401  {object}  api.ErrorResponse
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /user/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		user, err := findUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			log.Error().Err(err).Str("id", id).Msg("get user failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "server error"})
		}
		return c.JSON(http.StatusOK, api.UserResponse{User: *user})
	}
}
