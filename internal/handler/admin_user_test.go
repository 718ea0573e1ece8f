package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/docfest/festival-management/internal/model"
)

func TestAdminUserCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantField  string
	}{
		{
			name:       "valid account",
			body:       map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example", "role": "production_manager"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown role rejected",
			body:       map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example", "role": "wizard"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "role",
		},
		{
			name:       "missing role rejected",
			body:       map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "role",
		},
		{
			name:       "email without at sign",
			body:       map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul.festival", "role": "admin"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "email",
		},
		{
			name:       "blank first name",
			body:       map[string]any{"firstName": " ", "lastName": "Brunet", "email": "paul@festival.example", "role": "admin"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "firstName",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminUserHandler(newFakeUserStore())
			c, rec := newTestCtx(t, http.MethodPost, "/v1/users", tt.body, nil)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			checkStatus(t, rec, tt.wantStatus)
			if tt.wantField != "" {
				var resp struct {
					Errors map[string]string `json:"errors"`
				}
				decodeBody(t, rec, &resp)
				if _, ok := resp.Errors[tt.wantField]; !ok {
					t.Errorf("errors map missing %q: %v", tt.wantField, resp.Errors)
				}
			}
		})
	}
}

func TestAdminUserCreateDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	h := NewAdminUserHandler(users)
	seedUser(t, users, "paul@festival.example", model.RoleAdmin)

	body := map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example", "role": "admin"}
	c, rec := newTestCtx(t, http.MethodPost, "/v1/users", body, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	checkStatus(t, rec, http.StatusConflict)
	if len(users.items) != 1 {
		t.Errorf("duplicate create changed the store: %d users", len(users.items))
	}
}

func TestAdminUserCreateStoresNoPassword(t *testing.T) {
	users := newFakeUserStore()
	h := NewAdminUserHandler(users)

	body := map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example", "role": "jury_member"}
	c, rec := newTestCtx(t, http.MethodPost, "/v1/users", body, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	checkStatus(t, rec, http.StatusCreated)

	var u model.User
	decodeBody(t, rec, &u)
	if stored := users.items[u.ID]; stored.PasswordHash != nil {
		t.Error("admin-created account carries a password hash")
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Error("response leaks the password hash field")
	}
}

func TestAdminUserUpdate(t *testing.T) {
	users := newFakeUserStore()
	h := NewAdminUserHandler(users)
	u := seedUser(t, users, "paul@festival.example", model.RoleJuryMember)

	body := map[string]any{"firstName": "Paul", "lastName": "Brunet", "email": "paul@festival.example", "role": "jury_president"}
	c, rec := newTestCtx(t, http.MethodPut, "/v1/users/1", body, map[string]string{"id": "1"})
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	checkStatus(t, rec, http.StatusOK)
	if users.items[u.ID].Role != model.RoleJuryPresident {
		t.Errorf("role after update = %s", users.items[u.ID].Role)
	}

	// Unknown id.
	c, rec = newTestCtx(t, http.MethodPut, "/v1/users/99", body, map[string]string{"id": "99"})
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	checkStatus(t, rec, http.StatusNotFound)
}

func TestAdminUserDelete(t *testing.T) {
	users := newFakeUserStore()
	h := NewAdminUserHandler(users)
	seedUser(t, users, "paul@festival.example", model.RoleJuryMember)

	c, rec := newTestCtx(t, http.MethodDelete, "/v1/users/1", nil, map[string]string{"id": "1"})
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	checkStatus(t, rec, http.StatusOK)

	c, rec = newTestCtx(t, http.MethodDelete, "/v1/users/1", nil, map[string]string{"id": "1"})
	if err := h.Delete(c); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	checkStatus(t, rec, http.StatusNotFound)
}
