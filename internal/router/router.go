package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/reading-list/internal/config"
	"github.com/iliyamo/reading-list/internal/handler"
	"github.com/iliyamo/reading-list/internal/middleware"
	"github.com/iliyamo/reading-list/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. None of them
// require an existing session; each handler generates or exchanges
// tokens on its own.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
}

// RegisterBooks registers the protected book endpoints. All of them run
// behind JWTAuth, which resolves the session and rejects missing or
// inactive users; the response cache sits behind it so cached entries
// are always scoped to a resolved user.
func RegisterBooks(e *echo.Echo, b *handler.BookHandler, cfg config.Config, users *repository.UserRepo) {
	g := e.Group("/books")
	g.Use(middleware.JWTAuth(cfg.JWTSecret, users))
	g.Use(middleware.ResponseCache(b.Cache, b.Redis))

	g.GET("", b.List)
	g.GET("/search", b.Search)
	g.POST("/search", b.Search)
	g.GET("/shelved", b.Shelved)
	g.GET("/:id", b.Get)
	g.PUT("/:id", b.MoveShelf)
}
