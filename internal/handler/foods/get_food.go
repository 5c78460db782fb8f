// File: internal/handler/foods/get_food.go
package foods

import (
	"net/http"

	"nadespensa/internal/cache"
	"nadespensa/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GetFoodHandler 依 ID 取得食材，先查 Redis 再查資料庫
// 與寫入競爭時不回填快取
// @Summary     Get a food record by ID
// @Tags        foods
// @Produce     json
// @Param       id  path     string true "食材 ID"
// @Success     200 {object} model.Food
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /foods/{id} [get]
func GetFoodHandler(db database.DB, fc *cache.FoodCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctx := c.Request().Context()

		// 版本須在查資料庫之前取得，Fill 才能偵測期間的寫入
		version := ""
		if fc != nil {
			cached, ok, err := fc.Get(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("id", id).Msg("food cache read failed")
			}
			if ok {
				return c.JSON(http.StatusOK, cached)
			}
			if version, err = fc.Version(ctx, id); err != nil {
				log.Warn().Err(err).Str("id", id).Msg("food cache version failed")
			}
		}

		f, err := getFood(ctx, db, id)
		if err != nil {
			return storeError(c, "get", err)
		}
		if version != "" {
			if _, err := fc.Fill(ctx, f, version); err != nil {
				log.Warn().Err(err).Str("id", id).Msg("food cache write failed")
			}
		}
		return c.JSON(http.StatusOK, f)
	}
}
