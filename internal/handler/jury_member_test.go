package handler

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/repository"
)

type fakeJuryStore struct {
	nextID uint64
	items  map[uint64]model.JuryMember
}

func newFakeJuryStore() *fakeJuryStore {
	return &fakeJuryStore{items: map[uint64]model.JuryMember{}}
}

func (f *fakeJuryStore) emailTaken(email *string, selfID uint64) bool {
	if email == nil {
		return false
	}
	for _, m := range f.items {
		if m.ID != selfID && m.Email != nil && *m.Email == *email {
			return true
		}
	}
	return false
}

func (f *fakeJuryStore) Create(_ context.Context, m *model.JuryMember) error {
	if f.emailTaken(m.Email, 0) {
		return repository.ErrEmailExists
	}
	f.nextID++
	m.ID = f.nextID
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	f.items[m.ID] = *m
	return nil
}

func (f *fakeJuryStore) Update(_ context.Context, m *model.JuryMember) error {
	if _, ok := f.items[m.ID]; !ok {
		return repository.ErrJuryMemberNotFound
	}
	if f.emailTaken(m.Email, m.ID) {
		return repository.ErrEmailExists
	}
	f.items[m.ID] = *m
	return nil
}

func (f *fakeJuryStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrJuryMemberNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeJuryStore) GetByID(_ context.Context, id uint64) (model.JuryMember, error) {
	m, ok := f.items[id]
	if !ok {
		return model.JuryMember{}, repository.ErrJuryMemberNotFound
	}
	return m, nil
}

func (f *fakeJuryStore) List(_ context.Context) ([]model.JuryMember, error) {
	out := make([]model.JuryMember, 0, len(f.items))
	for _, m := range f.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ JuryMemberStore = (*fakeJuryStore)(nil)

func TestJuryMemberCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantField  string
	}{
		{
			name:       "minimal member",
			body:       map[string]any{"firstName": "Sofia", "lastName": "Marques", "expertise": "Journalism"},
			wantStatus: http.StatusCreated,
		},
		{
			name: "full member with president role",
			body: map[string]any{
				"firstName": "Sofia", "lastName": "Marques", "expertise": "Journalism",
				"role": "president", "email": "sofia@festival.example", "phone": "+33100000000", "bio": "Twenty years of festival juries.",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing expertise",
			body:       map[string]any{"firstName": "Sofia", "lastName": "Marques"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "expertise",
		},
		{
			name:       "invalid jury role",
			body:       map[string]any{"firstName": "Sofia", "lastName": "Marques", "expertise": "Journalism", "role": "chair"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "role",
		},
		{
			name:       "invalid email",
			body:       map[string]any{"firstName": "Sofia", "lastName": "Marques", "expertise": "Journalism", "email": "sofia"},
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewJuryMemberHandler(newFakeJuryStore())
			c, rec := newTestCtx(t, http.MethodPost, "/v1/jury-members", tt.body, nil)
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

func TestJuryMemberCreateDuplicateEmail(t *testing.T) {
	store := newFakeJuryStore()
	h := NewJuryMemberHandler(store)

	body := map[string]any{"firstName": "Sofia", "lastName": "Marques", "expertise": "Journalism", "email": "sofia@festival.example"}
	c, rec := newTestCtx(t, http.MethodPost, "/v1/jury-members", body, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	checkStatus(t, rec, http.StatusCreated)

	body["firstName"] = "Another"
	c, rec = newTestCtx(t, http.MethodPost, "/v1/jury-members", body, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("second Create: %v", err)
	}
	checkStatus(t, rec, http.StatusUnprocessableEntity)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if resp.Errors["email"] != "already exists" {
		t.Errorf("errors = %v", resp.Errors)
	}
}

func TestJuryMemberUpdate(t *testing.T) {
	store := newFakeJuryStore()
	h := NewJuryMemberHandler(store)
	m := model.JuryMember{FirstName: "Sofia", LastName: "Marques", Expertise: "Journalism"}
	if err := store.Create(context.Background(), &m); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	body := map[string]any{"firstName": "Sofia", "lastName": "Marques", "expertise": "Documentary film", "role": "member"}
	c, rec := newTestCtx(t, http.MethodPut, "/v1/jury-members/1", body, map[string]string{"id": "1"})
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	checkStatus(t, rec, http.StatusOK)
	if got := store.items[m.ID]; got.Expertise != "Documentary film" || got.Role == nil || *got.Role != model.JuryRoleMember {
		t.Errorf("member after update: %+v", got)
	}

	c, rec = newTestCtx(t, http.MethodPut, "/v1/jury-members/99", body, map[string]string{"id": "99"})
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	checkStatus(t, rec, http.StatusNotFound)
}

func TestJuryMemberDelete(t *testing.T) {
	store := newFakeJuryStore()
	h := NewJuryMemberHandler(store)
	m := model.JuryMember{FirstName: "Sofia", LastName: "Marques", Expertise: "Journalism"}
	if err := store.Create(context.Background(), &m); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	c, rec := newTestCtx(t, http.MethodDelete, "/v1/jury-members/1", nil, map[string]string{"id": "1"})
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	checkStatus(t, rec, http.StatusOK)

	c, rec = newTestCtx(t, http.MethodDelete, "/v1/jury-members/1", nil, map[string]string{"id": "1"})
	if err := h.Delete(c); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	checkStatus(t, rec, http.StatusNotFound)
}
