// File: internal/handler/foods/list_foods.go
package foods

import (
	"net/http"

	"nadespensa/internal/database"
	"nadespensa/internal/model"

	"github.com/labstack/echo/v4"
)

// ListFoodsHandler 列出食材；帶 nome 時只回傳同名、有庫存且未過期的食材
// @Summary     List or search food records
// @Description 沒有 nome 時回傳全部；有 nome 時為完全比對，且 quantidade > 0、dataDeValidade >= now
// @Tags        foods
// @Produce     json
// @Param       nome query    string false "食材名稱（完全比對）"
// @Success     200  {array}  model.Food
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /foods [get]
func ListFoodsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var (
			foods []model.Food
			err   error
		)
		ctx := c.Request().Context()
		if name := c.QueryParam("nome"); name != "" {
			foods, err = searchAvailableFoods(ctx, db, name)
		} else {
			foods, err = listFoods(ctx, db)
		}
		if err != nil {
			return storeError(c, "list", err)
		}
		return c.JSON(http.StatusOK, foods)
	}
}
