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

// JuryMemberStore is the jury member repository surface the handlers need.
type JuryMemberStore interface {
	List(ctx context.Context) ([]model.JuryMember, error)
	Create(ctx context.Context, m *model.JuryMember) error
	Update(ctx context.Context, m *model.JuryMember) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (model.JuryMember, error)
}

// JuryMemberHandler implements jury member management.  Listing is open to
// all staff; mutations are admin-only.
type JuryMemberHandler struct {
	Members JuryMemberStore
}

func NewJuryMemberHandler(m JuryMemberStore) *JuryMemberHandler {
	return &JuryMemberHandler{Members: m}
}

type juryMemberReq struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Expertise string  `json:"expertise"`
	Role      *string `json:"role"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
}

func (r *juryMemberReq) validate() map[string]string {
	fields := map[string]string{}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Expertise = strings.TrimSpace(r.Expertise)
	if r.FirstName == "" {
		fields["firstName"] = "required"
	}
	if r.LastName == "" {
		fields["lastName"] = "required"
	}
	if r.Expertise == "" {
		fields["expertise"] = "required"
	}
	if r.Role != nil && *r.Role != model.JuryRolePresident && *r.Role != model.JuryRoleMember {
		fields["role"] = "must be president or member"
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		fields["email"] = "valid email required"
	}
	return fields
}

func (r *juryMemberReq) toModel(id uint64) model.JuryMember {
	return model.JuryMember{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Expertise: r.Expertise,
		Role:      r.Role,
		Email:     r.Email,
		Phone:     r.Phone,
		Bio:       r.Bio,
	}
}

// List handles GET /v1/jury-members, open to any authenticated role.
func (h *JuryMemberHandler) List(c echo.Context) error {
	members, err := h.Members.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list jury members: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load jury members"})
	}
	return c.JSON(http.StatusOK, members)
}

// Create handles POST /v1/jury-members.
func (h *JuryMemberHandler) Create(c echo.Context) error {
	var req juryMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := req.validate(); len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := req.toModel(0)
	if err := h.Members.Create(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return validationFailed(c, map[string]string{"email": "already exists"})
		}
		c.Logger().Errorf("create jury member: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create jury member failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /v1/jury-members/:id.
func (h *JuryMemberHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req juryMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := req.validate(); len(fields) > 0 {
		return validationFailed(c, fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Members.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJuryMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "jury member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	m := req.toModel(id)
	if err := h.Members.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return validationFailed(c, map[string]string{"email": "already exists"})
		}
		c.Logger().Errorf("update jury member: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update jury member failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/jury-members/:id.  The member's ratings are
// removed by the schema's cascading foreign key.
func (h *JuryMemberHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Members.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJuryMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "jury member not found"})
		}
		c.Logger().Errorf("delete jury member: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete jury member failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "jury member deleted"})
}
