package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/recycling-finder/internal/auth"
	"github.com/octobees/recycling-finder/internal/config"
	"github.com/octobees/recycling-finder/internal/handler"
	middlewarepkg "github.com/octobees/recycling-finder/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserAdminHandler
	Businesses  *handler.BusinessesHandler
	AdminUpload *handler.AdminUploadHandler
	Search      *handler.SearchHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)
	e.GET("/businesses", handlers.Businesses.List)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.POST("/materials/upload-csv", handlers.AdminUpload.UploadCSV)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)

	secured.POST("/search", handlers.Search.Run, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
}
