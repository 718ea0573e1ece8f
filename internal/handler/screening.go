package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/queue"
	"github.com/docfest/festival-management/internal/repository"
)

// ScreeningStore is the screening repository surface the handlers need.
type ScreeningStore interface {
	Create(ctx context.Context, s *model.Screening) error
	GetByID(ctx context.Context, id uint64) (model.Screening, error)
	List(ctx context.Context) ([]model.Screening, error)
	SetPublished(ctx context.Context, id uint64, published bool) (prev model.Screening, cur model.Screening, err error)
	Delete(ctx context.Context, id uint64) error
}

// DocumentaryGetter verifies that a referenced documentary exists.
type DocumentaryGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Documentary, error)
}

// SchedulePublisher emits schedule domain events.  Event delivery is best
// effort: a broker failure never fails the request.
type SchedulePublisher interface {
	PublishScreeningPublished(ctx context.Context, ev queue.ScreeningPublishedEvent) error
}

// ScreeningHandler implements the production manager's scheduling
// operations: creating screenings with room-conflict detection, toggling
// the publication flag and deleting screenings.
type ScreeningHandler struct {
	Screenings ScreeningStore
	Docs       DocumentaryGetter
	Events     SchedulePublisher // optional; nil disables event publishing
	Now        func() time.Time  // injectable clock for tests
}

func NewScreeningHandler(s ScreeningStore, d DocumentaryGetter, ev SchedulePublisher) *ScreeningHandler {
	return &ScreeningHandler{Screenings: s, Docs: d, Events: ev, Now: time.Now}
}

type createScreeningReq struct {
	DocumentaryID uint64 `json:"documentaryId"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:MM
	Room          string `json:"room"`
	IsPublished   *bool  `json:"isPublished"`
}

// screeningResp decorates a screening with the derived isPast flag.
type screeningResp struct {
	model.Screening
	IsPast bool `json:"isPast"`
}

// Create handles POST /v1/screenings.  The referenced documentary must
// exist, the date must not be in the past, and the (date, time, room)
// triple must be free.  The conflict check is an exact match on the triple:
// screenings carry no duration, so bookings at different times never
// conflict however close together they are.
func (h *ScreeningHandler) Create(c echo.Context) error {
	var req createScreeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	if req.DocumentaryID == 0 {
		fields["documentaryId"] = "required"
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		fields["date"] = "valid date required (YYYY-MM-DD)"
	} else {
		today, _ := time.Parse(model.DateLayout, h.Now().UTC().Format(model.DateLayout))
		if date.Before(today) {
			fields["date"] = "must not be in the past"
		}
	}
	if _, err := time.Parse(model.TimeLayout, req.Time); err != nil {
		fields["time"] = "valid time required (HH:MM)"
	}
	req.Room = strings.TrimSpace(req.Room)
	if req.Room == "" {
		fields["room"] = "required"
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Docs.GetByID(ctx, req.DocumentaryID); err != nil {
		if errors.Is(err, repository.ErrDocumentaryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "documentary not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify documentary"})
	}

	s := model.Screening{
		DocumentaryID: req.DocumentaryID,
		Date:          req.Date,
		Time:          req.Time,
		Room:          req.Room,
	}
	if req.IsPublished != nil {
		s.IsPublished = *req.IsPublished
	}
	if err := h.Screenings.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrScreeningConflict) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "room already booked for this date and time",
			})
		}
		c.Logger().Errorf("create screening: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screening failed"})
	}
	return c.JSON(http.StatusCreated, screeningResp{Screening: s, IsPast: s.IsPast(h.Now().UTC())})
}

// List handles GET /v1/screenings for the production manager.  Each entry
// carries the derived isPast flag.
func (h *ScreeningHandler) List(c echo.Context) error {
	screenings, err := h.Screenings.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list screenings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load screenings"})
	}
	now := h.Now().UTC()
	out := make([]screeningResp, 0, len(screenings))
	for _, s := range screenings {
		out = append(out, screeningResp{Screening: s, IsPast: s.IsPast(now)})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/screenings/:id.  Only the publication flag can be
// changed; everything else about a screening is fixed at creation.  The
// toggle is idempotent, and a false->true transition emits a
// screening.published event.
func (h *ScreeningHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		IsPublished *bool `json:"isPublished"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.IsPublished == nil {
		return validationFailed(c, map[string]string{"isPublished": "required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prev, cur, err := h.Screenings.SetPublished(ctx, id, *req.IsPublished)
	if err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		c.Logger().Errorf("update screening: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update screening failed"})
	}

	if h.Events != nil && !prev.IsPublished && cur.IsPublished {
		ev := queue.ScreeningPublishedEvent{
			ScreeningID:   cur.ID,
			DocumentaryID: cur.DocumentaryID,
			Date:          cur.Date,
			Time:          cur.Time,
			Room:          cur.Room,
			PublishedAt:   h.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Events.PublishScreeningPublished(ctx, ev); err != nil {
			c.Logger().Warnf("publish screening event: %v", err)
		}
	}
	return c.JSON(http.StatusOK, screeningResp{Screening: cur, IsPast: cur.IsPast(h.Now().UTC())})
}

// Delete handles DELETE /v1/screenings/:id.  The screening's ratings are
// removed by the schema's cascading foreign key.
func (h *ScreeningHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Screenings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		c.Logger().Errorf("delete screening: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete screening failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "screening deleted"})
}
