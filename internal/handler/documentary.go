package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/repository"
)

// DocumentaryStore is the documentary repository surface the handlers need.
type DocumentaryStore interface {
	Create(ctx context.Context, d *model.Documentary) error
	List(ctx context.Context) ([]model.Documentary, error)
	GetByID(ctx context.Context, id uint64) (model.Documentary, error)
}

// DocumentaryHandler implements documentary registration and listing.
type DocumentaryHandler struct {
	Docs DocumentaryStore
}

func NewDocumentaryHandler(d DocumentaryStore) *DocumentaryHandler {
	return &DocumentaryHandler{Docs: d}
}

type personReq struct {
	Code      string `json:"code"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

type documentaryReq struct {
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Subject  string    `json:"subject"`
	Director personReq `json:"director"`
	Producer personReq `json:"producer"`
}

func validatePerson(prefix string, p *personReq, fields map[string]string) {
	p.Code = strings.TrimSpace(p.Code)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if p.Code == "" {
		fields[prefix+".code"] = "required"
	}
	if p.FirstName == "" {
		fields[prefix+".firstName"] = "required"
	}
	if p.LastName == "" {
		fields[prefix+".lastName"] = "required"
	}
	if _, err := time.Parse(model.DateLayout, p.BirthDate); err != nil {
		fields[prefix+".birthDate"] = "valid date required (YYYY-MM-DD)"
	}
}

// Create handles POST /v1/documentaries.  The documentary and its owned
// director/producer records are validated together and written in one
// transaction by the repository.
func (h *DocumentaryHandler) Create(c echo.Context) error {
	var req documentaryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	req.Code = strings.TrimSpace(req.Code)
	req.Title = strings.TrimSpace(req.Title)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Code == "" {
		fields["code"] = "required"
	}
	if req.Title == "" {
		fields["title"] = "required"
	}
	if req.Subject == "" {
		fields["subject"] = "required"
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		fields["date"] = "valid date required (YYYY-MM-DD)"
	}
	validatePerson("director", &req.Director, fields)
	validatePerson("producer", &req.Producer, fields)
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d := model.Documentary{
		Code:    req.Code,
		Title:   req.Title,
		Date:    req.Date,
		Subject: req.Subject,
		Director: model.Person{
			Code:      req.Director.Code,
			FirstName: req.Director.FirstName,
			LastName:  req.Director.LastName,
			BirthDate: req.Director.BirthDate,
		},
		Producer: model.Person{
			Code:      req.Producer.Code,
			FirstName: req.Producer.FirstName,
			LastName:  req.Producer.LastName,
			BirthDate: req.Producer.BirthDate,
		},
	}
	if err := h.Docs.Create(ctx, &d); err != nil {
		if errors.Is(err, repository.ErrCodeExists) {
			return validationFailed(c, map[string]string{"code": "already registered"})
		}
		c.Logger().Errorf("create documentary: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create documentary failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /v1/documentaries, open to any authenticated role.
func (h *DocumentaryHandler) List(c echo.Context) error {
	docs, err := h.Docs.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list documentaries: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load documentaries"})
	}
	return c.JSON(http.StatusOK, docs)
}

// Update is a documented gap carried over from the reference system: the
// inspection workflow never needed documentary edits, so the endpoint
// answers 501 until that changes.
func (h *DocumentaryHandler) Update(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"message": "not implemented"})
}

// Delete answers 501 for the same reason as Update.
func (h *DocumentaryHandler) Delete(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"message": "not implemented"})
}
