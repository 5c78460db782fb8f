package middleware

import (
	"net/http"
	"strings"

	"nadespensa/internal/api"
	"nadespensa/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "userID"

// TokenVerifier 由 service.TokenService 實作
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// bearerToken 回傳 header 中第二個以空白分隔的欄位；scheme 不檢查
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// RequireAuth 驗證 Authorization header，成功時將 user id 放入 context。
// 失敗一律直接回應，不會呼叫 next。
func RequireAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "access denied"})
			}
			userID, err := tokens.Verify(token)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: service.ErrInvalidToken.Error()})
			}
			c.Set(ContextUserKey, userID)
			return next(c)
		}
	}
}

// UserID returns the identity stored by RequireAuth, or "" outside a protected route.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserKey).(string)
	return id
}
