package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware chain: %v", err)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(model.RoleAdmin, model.RoleProductionManager)

	tests := []struct {
		name string
		role any
		want int
	}{
		{"allowed first role", model.RoleAdmin, http.StatusOK},
		{"allowed second role", model.RoleProductionManager, http.StatusOK},
		{"disallowed role", model.RoleJuryMember, http.StatusForbidden},
		{"no role in context", nil, http.StatusForbidden},
		{"raw string instead of parsed role", "admin", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runWithRole(t, mw, tt.role)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAnyAuthenticated(t *testing.T) {
	mw := AnyAuthenticated()
	for _, r := range model.AllRoles() {
		if rec := runWithRole(t, mw, r); rec.Code != http.StatusOK {
			t.Errorf("role %s rejected with %d", r, rec.Code)
		}
	}
	if rec := runWithRole(t, mw, nil); rec.Code != http.StatusForbidden {
		t.Error("request without a role passed AnyAuthenticated")
	}
}
