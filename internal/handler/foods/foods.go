// Package foods 食材 CRUD 與新鮮度查詢
package foods

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"nadespensa/internal/api"
	"nadespensa/internal/cache"
	"nadespensa/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	createFood           = store.CreateFood
	updateFood           = store.UpdateFood
	deleteFood           = store.DeleteFood
	getFood              = store.GetFood
	listFoods            = store.ListFoods
	searchAvailableFoods = store.SearchAvailableFoods
)

const serverErrorMsg = "server error"

// validationMsg drops the sentinel prefix so the client sees the field rule.
func validationMsg(err error) string {
	return strings.TrimPrefix(err.Error(), store.ErrValidation.Error()+": ")
}

// storeError maps a store failure to its response.
func storeError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "food not found"})
	case errors.Is(err, store.ErrValidation):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: validationMsg(err)})
	}
	log.Error().Err(err).Str("op", op).Msg("food store failed")
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: serverErrorMsg})
}

// invalidate 快取失敗只記錄，不影響回應
func invalidate(ctx context.Context, fc *cache.FoodCache, id string) {
	if fc == nil {
		return
	}
	if err := fc.Invalidate(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("food cache invalidate failed")
	}
}
