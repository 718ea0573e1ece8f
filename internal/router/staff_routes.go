package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/handler"
	"github.com/docfest/festival-management/internal/middleware"
	"github.com/docfest/festival-management/internal/model"
)

// RegisterStaff registers the role-gated festival workflows.  Each route
// group carries the JWT middleware plus the role subset permitted for the
// operation: documentaries are written by the inspection manager, the
// schedule is managed by the production manager, and scoring belongs to the
// jury president.  Read-only listings are open to every authenticated role.
func RegisterStaff(
	e *echo.Echo,
	d *handler.DocumentaryHandler,
	s *handler.ScreeningHandler,
	j *handler.JuryMemberHandler,
	r *handler.RatingHandler,
	jwtSecret string,
) {
	// ---- Read-only listings, any authenticated role ----
	anyAuth := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.AnyAuthenticated())
	anyAuth.GET("/documentaries", d.List)
	anyAuth.GET("/jury-members", j.List)

	// ---- Documentaries, inspection manager ----
	inspection := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleInspectionManager),
	)
	inspection.POST("/documentaries", d.Create)
	inspection.PUT("/documentaries/:id", d.Update)    // 501, documented gap
	inspection.DELETE("/documentaries/:id", d.Delete) // 501, documented gap

	// ---- Screenings, production manager ----
	production := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleProductionManager),
	)
	production.GET("/screenings", s.List)
	production.POST("/screenings", s.Create)
	production.PUT("/screenings/:id", s.Update)
	production.PATCH("/screenings/:id", s.Update) // allow publish toggles via PATCH as well
	production.DELETE("/screenings/:id", s.Delete)

	// ---- Ratings, jury president ----
	jury := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleJuryPresident),
	)
	jury.GET("/ratings", r.List)
	jury.POST("/ratings", r.Create)
	jury.POST("/ratings/bulk", r.CreateBulk)
	jury.GET("/ratings/screening/:screening_id", r.ListForScreening)
	jury.GET("/screenings/:id/average", r.Average)
	jury.DELETE("/ratings/:id", r.Delete)
}
