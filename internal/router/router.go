package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/docfest/festival-management/internal/config"
	"github.com/docfest/festival-management/internal/handler"
	"github.com/docfest/festival-management/internal/middleware"
	"github.com/docfest/festival-management/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Login, refresh and
// logout live under /v1/auth and require no token; /v1/me requires a valid
// access token with any staff role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.AnyAuthenticated())
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated schedule feed.  The route is
// wrapped in the Redis response cache when a client is available; with a
// nil client the middleware is a pass-through.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/v1/screenings/published", p.Schedule, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterAdmin registers admin-only endpoints: staff account management
// and jury member administration.
func RegisterAdmin(e *echo.Echo, u *handler.AdminUserHandler, j *handler.JuryMemberHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Users ----
	g.GET("/users", u.List)
	g.POST("/users", u.Create)
	g.PUT("/users/:id", u.Update)
	g.DELETE("/users/:id", u.Delete)

	// ---- Jury members (administration) ----
	g.POST("/jury-members", j.Create)
	g.PUT("/jury-members/:id", j.Update)
	g.DELETE("/jury-members/:id", j.Delete)
}
