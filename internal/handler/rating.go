package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/repository"
)

// RatingStore is the rating repository surface the handlers need.
type RatingStore interface {
	Create(ctx context.Context, rt *model.Rating) error
	CreateBulk(ctx context.Context, screeningID uint64, entries []repository.BulkEntry) ([]model.Rating, error)
	List(ctx context.Context) ([]model.Rating, error)
	ListByScreening(ctx context.Context, screeningID uint64) ([]model.Rating, error)
	AverageScore(ctx context.Context, screeningID uint64) (*float64, error)
	Delete(ctx context.Context, id uint64) error
}

// ScreeningGetter verifies that a referenced screening exists.
type ScreeningGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Screening, error)
}

// JuryMemberGetter verifies that a referenced jury member exists.
type JuryMemberGetter interface {
	GetByID(ctx context.Context, id uint64) (model.JuryMember, error)
}

// RatingHandler implements the jury president's scoring workflow: single
// and bulk rating submission, listing and the on-demand average.
type RatingHandler struct {
	Ratings    RatingStore
	Screenings ScreeningGetter
	Members    JuryMemberGetter
}

func NewRatingHandler(r RatingStore, s ScreeningGetter, m JuryMemberGetter) *RatingHandler {
	return &RatingHandler{Ratings: r, Screenings: s, Members: m}
}

type ratingReq struct {
	ScreeningID  uint64  `json:"screeningId"`
	JuryMemberID uint64  `json:"juryMemberId"`
	Score        float64 `json:"score"`
	Comment      *string `json:"comment"`
}

type bulkRatingReq struct {
	ScreeningID uint64 `json:"screeningId"`
	Ratings     []struct {
		JuryMemberID uint64  `json:"juryMemberId"`
		Score        float64 `json:"score"`
		Comment      *string `json:"comment"`
	} `json:"ratings"`
}

// Create handles POST /v1/ratings.  A jury member scores a screening at
// most once: a second submission for the same pair is rejected without
// touching the existing rating.
func (h *RatingHandler) Create(c echo.Context) error {
	var req ratingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	if req.ScreeningID == 0 {
		fields["screeningId"] = "required"
	}
	if req.JuryMemberID == 0 {
		fields["juryMemberId"] = "required"
	}
	if !model.ValidScore(req.Score) {
		fields["score"] = fmt.Sprintf("must be between %d and %d", model.MinScore, model.MaxScore)
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Screenings.GetByID(ctx, req.ScreeningID); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify screening"})
	}
	if _, err := h.Members.GetByID(ctx, req.JuryMemberID); err != nil {
		if errors.Is(err, repository.ErrJuryMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "jury member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify jury member"})
	}

	rt := model.Rating{
		ScreeningID:  req.ScreeningID,
		JuryMemberID: req.JuryMemberID,
		Score:        req.Score,
		Comment:      req.Comment,
	}
	if err := h.Ratings.Create(ctx, &rt); err != nil {
		if errors.Is(err, repository.ErrDuplicateRating) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"message": "jury member has already rated this screening",
			})
		}
		c.Logger().Errorf("create rating: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rating failed"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// CreateBulk handles POST /v1/ratings/bulk.  All entries target one
// screening and are written inside one transaction; entries whose jury
// member already rated the screening are skipped silently and only the
// newly created ratings are returned.  Every referenced jury member must
// exist: an unknown member id fails the whole batch with a per-entry
// validation error before anything is written.
func (h *RatingHandler) CreateBulk(c echo.Context) error {
	var req bulkRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	if req.ScreeningID == 0 {
		fields["screeningId"] = "required"
	}
	if len(req.Ratings) == 0 {
		fields["ratings"] = "at least one entry required"
	}
	for i, e := range req.Ratings {
		if e.JuryMemberID == 0 {
			fields[fmt.Sprintf("ratings.%d.juryMemberId", i)] = "required"
		}
		if !model.ValidScore(e.Score) {
			fields[fmt.Sprintf("ratings.%d.score", i)] = fmt.Sprintf("must be between %d and %d", model.MinScore, model.MaxScore)
		}
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Screenings.GetByID(ctx, req.ScreeningID); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify screening"})
	}

	// Verify each distinct jury member up front so a bad id surfaces as a
	// validation error instead of a foreign key failure mid-transaction.
	missing := map[uint64]bool{}
	checked := map[uint64]bool{}
	for _, e := range req.Ratings {
		if checked[e.JuryMemberID] {
			continue
		}
		checked[e.JuryMemberID] = true
		if _, err := h.Members.GetByID(ctx, e.JuryMemberID); err != nil {
			if errors.Is(err, repository.ErrJuryMemberNotFound) {
				missing[e.JuryMemberID] = true
				continue
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify jury member"})
		}
	}
	if len(missing) > 0 {
		for i, e := range req.Ratings {
			if missing[e.JuryMemberID] {
				fields[fmt.Sprintf("ratings.%d.juryMemberId", i)] = "unknown jury member"
			}
		}
		return validationFailed(c, fields)
	}

	entries := make([]repository.BulkEntry, 0, len(req.Ratings))
	for _, e := range req.Ratings {
		entries = append(entries, repository.BulkEntry{
			JuryMemberID: e.JuryMemberID,
			Score:        e.Score,
			Comment:      e.Comment,
		})
	}
	created, err := h.Ratings.CreateBulk(ctx, req.ScreeningID, entries)
	if err != nil {
		c.Logger().Errorf("bulk create ratings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk create ratings failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ratings": created})
}

// List handles GET /v1/ratings.
func (h *RatingHandler) List(c echo.Context) error {
	ratings, err := h.Ratings.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list ratings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load ratings"})
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListForScreening handles GET /v1/ratings/screening/:screening_id.
func (h *RatingHandler) ListForScreening(c echo.Context) error {
	id, err := pathID(c, "screening_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening_id"})
	}
	ratings, err := h.Ratings.ListByScreening(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("list ratings for screening: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load ratings"})
	}
	return c.JSON(http.StatusOK, ratings)
}

// Average handles GET /v1/screenings/:id/average.  The average is the
// plain arithmetic mean of all scores for the screening; null when it has
// no ratings yet.
func (h *RatingHandler) Average(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Screenings.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify screening"})
	}
	avg, err := h.Ratings.AverageScore(ctx, id)
	if err != nil {
		c.Logger().Errorf("average score: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute average"})
	}
	return c.JSON(http.StatusOK, echo.Map{"screeningId": id, "average": avg})
}

// Delete handles DELETE /v1/ratings/:id.
func (h *RatingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
		}
		c.Logger().Errorf("delete rating: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rating failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rating deleted"})
}
