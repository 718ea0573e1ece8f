package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
)

// PublishedLister serves the public schedule feed.
type PublishedLister interface {
	ListPublished(ctx context.Context) ([]model.PublishedScreening, error)
}

// PublicHandler exposes the unauthenticated festival schedule: every
// published screening joined with its documentary, director and producer,
// ordered by date and time.  The route sits behind the Redis response cache.
type PublicHandler struct {
	Screenings PublishedLister
}

func NewPublicHandler(s PublishedLister) *PublicHandler {
	return &PublicHandler{Screenings: s}
}

// Schedule handles GET /v1/screenings/published.
func (h *PublicHandler) Schedule(c echo.Context) error {
	items, err := h.Screenings.ListPublished(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("public schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	if items == nil {
		items = []model.PublishedScreening{}
	}
	return c.JSON(http.StatusOK, items)
}
