// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"nadespensa/internal/api"
	"nadespensa/internal/cache"
	"nadespensa/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const pingKey = "health:ping"

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ec echo.Context) error {
		ctx := ec.Request().Context()
		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("ping: database")
			return ec.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := c.Set(ctx, pingKey, "pong", 10*time.Second).Err(); err != nil {
			log.Warn().Err(err).Msg("ping: cache")
			return ec.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return ec.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
