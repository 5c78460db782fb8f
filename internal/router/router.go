// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"nadespensa/internal/cache"
	"nadespensa/internal/database"
	"nadespensa/internal/handler"
	"nadespensa/internal/handler/auth"
	"nadespensa/internal/handler/foods"
	"nadespensa/internal/handler/users"
	"nadespensa/internal/middleware"
	"nadespensa/internal/service"
)

// Deps 路由所需的共用資源
type Deps struct {
	DB        database.DB
	Cache     cache.Cache
	FoodCache *cache.FoodCache
	Hasher    *service.PasswordHasher
	Tokens    *service.TokenService
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens)

	// 健康檢查
	e.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊與登入
	e.POST("/auth/register", auth.RegisterHandler(d.DB, d.Hasher))
	e.POST("/auth/login", auth.LoginHandler(d.DB, d.Hasher, d.Tokens))

	e.GET("/user/:id", users.GetUserHandler(d.DB), requireAuth)

	// 食材 CRUD，全部需要登入
	apiFoods := e.Group("/foods", requireAuth)
	apiFoods.POST("", foods.CreateFoodHandler(d.DB))
	apiFoods.GET("", foods.ListFoodsHandler(d.DB))
	apiFoods.GET("/:id", foods.GetFoodHandler(d.DB, d.FoodCache))
	apiFoods.PUT("/:id", foods.UpdateFoodHandler(d.DB, d.FoodCache))
	apiFoods.DELETE("/:id", foods.DeleteFoodHandler(d.DB, d.FoodCache))
}
