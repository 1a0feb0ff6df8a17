package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/todo-task-api/internal/handler"
	"github.com/iliyamo/todo-task-api/internal/middleware"
)

// Register wires up every route of the API on the provided Echo instance.
// CORS is fully open: the Android client talks to the server from an
// arbitrary origin. Uploaded attachments are served as static files under
// /uploads. Only /api/users/me requires a bearer token; every endpoint the
// original mobile client calls is public.
func Register(e *echo.Echo, t *handler.TaskHandler, a *handler.AuthHandler, uploadDir, jwtSecret string) {
	e.Use(echomw.CORS())

	e.GET("/api/health", handler.Health)

	tasks := e.Group("/api/tasks")
	tasks.GET("", t.List)
	tasks.POST("", t.Create)
	tasks.GET("/:id", t.Get)
	tasks.PUT("/:id", t.Update)
	tasks.PATCH("/:id/toggle", t.Toggle)
	tasks.DELETE("/:id", t.Delete)

	auth := e.Group("/api/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)

	users := e.Group("/api/users")
	// Static /me segment takes priority over /:id in echo's router.
	users.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
	users.GET("/:id", a.GetUser)
	users.PUT("/:id", a.UpdateUser)

	e.Static("/uploads", uploadDir)
}
