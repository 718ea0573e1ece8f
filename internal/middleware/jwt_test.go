package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware chain: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleProductionManager, 15)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if id, _ := c.Get(CtxUserID).(uint64); id != 42 {
		t.Errorf("user id in context = %v", c.Get(CtxUserID))
	}
	if role, _ := c.Get(CtxRole).(model.Role); role != model.RoleProductionManager {
		t.Errorf("role in context = %v", c.Get(CtxRole))
	}
}

func TestJWTAuthRejects(t *testing.T) {
	wrongSecret, err := utils.NewAccessToken("other-secret", 42, model.RoleAdmin, 15)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	expired, err := utils.NewAccessToken(testSecret, 42, model.RoleAdmin, -5)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	unknownRole, err := utils.NewAccessToken(testSecret, 42, model.Role("intern"), 15)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing secret", "Bearer " + wrongSecret.Token},
		{"expired token", "Bearer " + expired.Token},
		{"role outside the enumeration", "Bearer " + unknownRole.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := runJWT(t, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
