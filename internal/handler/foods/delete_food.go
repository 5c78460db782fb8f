// File: internal/handler/foods/delete_food.go
package foods

import (
	"net/http"

	"nadespensa/internal/cache"
	"nadespensa/internal/database"

	"github.com/labstack/echo/v4"
)

// DeleteFoodHandler 刪除食材並回傳刪除前的資料
// @Summary     Delete a food record
// @Tags        foods
// @Produce     json
// @Param       id  path     string true "食材 ID"
// @Success     200 {object} model.Food
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /foods/{id} [delete]
func DeleteFoodHandler(db database.DB, fc *cache.FoodCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctx := c.Request().Context()
		f, err := deleteFood(ctx, db, id)
		if err != nil {
			return storeError(c, "delete", err)
		}
		invalidate(ctx, fc, id)
		return c.JSON(http.StatusOK, f)
	}
}
