// File: internal/handler/foods/update_food.go
package foods

import (
	"net/http"

	"nadespensa/internal/api"
	"nadespensa/internal/cache"
	"nadespensa/internal/database"

	"github.com/labstack/echo/v4"
)

// UpdateFoodHandler 部分更新食材，只套用有提供的欄位
// @Summary     Update a food record
// @Description 未提供的欄位維持原值；提供的欄位套用與新增相同的檢查
// @Tags        foods
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "食材 ID"
// @Param       body body     api.UpdateFoodRequest true "要更新的欄位"
// @Success     200  {object} model.Food
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /foods/{id} [put]
func UpdateFoodHandler(db database.DB, fc *cache.FoodCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		var req api.UpdateFoodRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		patch, err := req.ToPatch()
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		ctx := c.Request().Context()
		f, err := updateFood(ctx, db, id, patch)
		if err != nil {
			return storeError(c, "update", err)
		}
		invalidate(ctx, fc, id)
		return c.JSON(http.StatusOK, f)
	}
}
