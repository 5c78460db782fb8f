// File: internal/handler/foods/create_food.go
package foods

import (
	"net/http"

	"nadespensa/internal/api"
	"nadespensa/internal/database"

	"github.com/labstack/echo/v4"
)

// CreateFoodHandler 新增食材
// @Summary     Create a food record
// @Description name、quantidade、dataDeValidade 皆為必填；quantidade 不可為負
// @Tags        foods
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateFoodRequest true "食材資料"
// @Success     201  {object} model.Food
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /foods [post]
func CreateFoodHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateFoodRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		in, err := req.ToModel()
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		f, err := createFood(c.Request().Context(), db, in)
		if err != nil {
			return storeError(c, "create", err)
		}
		return c.JSON(http.StatusCreated, f)
	}
}
