package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
	"github.com/docfest/festival-management/internal/queue"
	"github.com/docfest/festival-management/internal/repository"
)

// newTestCtx builds an echo context around an httptest recorder.  The body,
// when non-nil, is JSON-encoded; params map to path parameters.
func newTestCtx(t *testing.T, method, target string, body any, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// ---- screening store ----

type fakeScreeningStore struct {
	nextID uint64
	items  map[uint64]model.Screening
}

func newFakeScreeningStore() *fakeScreeningStore {
	return &fakeScreeningStore{items: map[uint64]model.Screening{}}
}

func (f *fakeScreeningStore) Create(_ context.Context, s *model.Screening) error {
	for _, e := range f.items {
		if e.Date == s.Date && e.Time == s.Time && e.Room == s.Room {
			return repository.ErrScreeningConflict
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	f.items[s.ID] = *s
	return nil
}

func (f *fakeScreeningStore) GetByID(_ context.Context, id uint64) (model.Screening, error) {
	s, ok := f.items[id]
	if !ok {
		return model.Screening{}, repository.ErrScreeningNotFound
	}
	return s, nil
}

func (f *fakeScreeningStore) List(_ context.Context) ([]model.Screening, error) {
	out := make([]model.Screening, 0, len(f.items))
	for _, s := range f.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeScreeningStore) SetPublished(_ context.Context, id uint64, published bool) (model.Screening, model.Screening, error) {
	prev, ok := f.items[id]
	if !ok {
		return model.Screening{}, model.Screening{}, repository.ErrScreeningNotFound
	}
	if prev.IsPublished == published {
		return prev, prev, nil
	}
	cur := prev
	cur.IsPublished = published
	cur.UpdatedAt = time.Now().UTC()
	f.items[id] = cur
	return prev, cur, nil
}

func (f *fakeScreeningStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrScreeningNotFound
	}
	delete(f.items, id)
	return nil
}

// ---- documentary store ----

type fakeDocStore struct {
	nextID uint64
	items  map[uint64]model.Documentary
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{items: map[uint64]model.Documentary{}}
}

func (f *fakeDocStore) Create(_ context.Context, d *model.Documentary) error {
	for _, e := range f.items {
		if e.Code == d.Code {
			return repository.ErrCodeExists
		}
	}
	f.nextID++
	d.ID = f.nextID
	d.Director.ID = f.nextID
	d.Producer.ID = f.nextID
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	f.items[d.ID] = *d
	return nil
}

func (f *fakeDocStore) GetByID(_ context.Context, id uint64) (model.Documentary, error) {
	d, ok := f.items[id]
	if !ok {
		return model.Documentary{}, repository.ErrDocumentaryNotFound
	}
	return d, nil
}

func (f *fakeDocStore) List(_ context.Context) ([]model.Documentary, error) {
	out := make([]model.Documentary, 0, len(f.items))
	for _, d := range f.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocStore) seed(t *testing.T) model.Documentary {
	t.Helper()
	d := model.Documentary{
		Code:    "DOC-001",
		Title:   "Glaciers",
		Date:    "2025-11-02",
		Subject: "Climate",
		Director: model.Person{
			Code: "R-001", FirstName: "Ana", LastName: "Costa", BirthDate: "1975-03-14",
		},
		Producer: model.Person{
			Code: "P-001", FirstName: "Marc", LastName: "Weiss", BirthDate: "1968-09-30",
		},
	}
	if err := f.Create(context.Background(), &d); err != nil {
		t.Fatalf("seed documentary: %v", err)
	}
	return d
}

// ---- event publisher ----

type fakePublisher struct {
	events []queue.ScreeningPublishedEvent
	err    error
}

func (f *fakePublisher) PublishScreeningPublished(_ context.Context, ev queue.ScreeningPublishedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

// ---- rating store ----

type fakeRatingStore struct {
	nextID uint64
	items  map[uint64]model.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{items: map[uint64]model.Rating{}}
}

func (f *fakeRatingStore) hasPair(screeningID, memberID uint64) bool {
	for _, r := range f.items {
		if r.ScreeningID == screeningID && r.JuryMemberID == memberID {
			return true
		}
	}
	return false
}

func (f *fakeRatingStore) Create(_ context.Context, rt *model.Rating) error {
	if f.hasPair(rt.ScreeningID, rt.JuryMemberID) {
		return repository.ErrDuplicateRating
	}
	f.nextID++
	rt.ID = f.nextID
	rt.CreatedAt = time.Now().UTC()
	rt.UpdatedAt = rt.CreatedAt
	f.items[rt.ID] = *rt
	return nil
}

func (f *fakeRatingStore) CreateBulk(ctx context.Context, screeningID uint64, entries []repository.BulkEntry) ([]model.Rating, error) {
	created := make([]model.Rating, 0, len(entries))
	for _, e := range entries {
		rt := model.Rating{
			ScreeningID:  screeningID,
			JuryMemberID: e.JuryMemberID,
			Score:        e.Score,
			Comment:      e.Comment,
		}
		if err := f.Create(ctx, &rt); err != nil {
			continue // duplicate pair, skip silently
		}
		created = append(created, rt)
	}
	return created, nil
}

func (f *fakeRatingStore) List(_ context.Context) ([]model.Rating, error) {
	out := make([]model.Rating, 0, len(f.items))
	for _, r := range f.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRatingStore) ListByScreening(_ context.Context, screeningID uint64) ([]model.Rating, error) {
	out := []model.Rating{}
	for _, r := range f.items {
		if r.ScreeningID == screeningID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRatingStore) AverageScore(_ context.Context, screeningID uint64) (*float64, error) {
	var sum float64
	var n int
	for _, r := range f.items {
		if r.ScreeningID == screeningID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

func (f *fakeRatingStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrRatingNotFound
	}
	delete(f.items, id)
	return nil
}

// ---- jury member getter ----

type fakeMemberStore struct {
	items map[uint64]model.JuryMember
}

func newFakeMemberStore(ids ...uint64) *fakeMemberStore {
	f := &fakeMemberStore{items: map[uint64]model.JuryMember{}}
	for _, id := range ids {
		f.items[id] = model.JuryMember{ID: id, FirstName: "Member", LastName: "N", Expertise: "Documentary"}
	}
	return f
}

func (f *fakeMemberStore) GetByID(_ context.Context, id uint64) (model.JuryMember, error) {
	m, ok := f.items[id]
	if !ok {
		return model.JuryMember{}, repository.ErrJuryMemberNotFound
	}
	return m, nil
}

var _ ScreeningStore = (*fakeScreeningStore)(nil)
var _ DocumentaryStore = (*fakeDocStore)(nil)
var _ SchedulePublisher = (*fakePublisher)(nil)
var _ RatingStore = (*fakeRatingStore)(nil)
var _ JuryMemberGetter = (*fakeMemberStore)(nil)

func checkStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
