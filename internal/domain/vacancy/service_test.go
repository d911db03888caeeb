package vacancy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

type fakeProvider struct {
	items    []map[string]any
	err      error
	keywords []string
}

func (p *fakeProvider) Name() string { return "fake" }
func (p *fakeProvider) Connect(context.Context) error { return p.err }
func (p *fakeProvider) LoadVacancies(_ context.Context, keyword string) ([]map[string]any, error) {
	p.keywords = append(p.keywords, keyword)
	if p.err != nil {
		return nil, p.err
	}
	return p.items, nil
}

type memRepo struct {
	records []domain.Record
	addErr  error
}

func (r *memRepo) GetData(context.Context) []domain.Record {
	return append([]domain.Record(nil), r.records...)
}

func (r *memRepo) AddData(_ context.Context, vacancies []domain.Vacancy) error {
	if r.addErr != nil {
		return r.addErr
	}
	for _, v := range vacancies {
		r.records = append(r.records, v.Record())
	}
	return nil
}

func (r *memRepo) DeleteData(_ context.Context, criteria domain.Criteria) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if !criteria.Match(rec) {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

func item(title string, from any) map[string]any {
	return map[string]any{
		"name":          title,
		"employer":      map[string]any{"name": "Co"},
		"salary":        map[string]any{"from": from, "to": nil},
		"alternate_url": "https://hh.ru/vacancy/" + title,
	}
}

func newTestService(t *testing.T, p Provider, r Repository) Service {
	t.Helper()
	fixed := uuid.MustParse("550e8400-e29b-41d4-a716-446655440001")
	svc, err := NewService(
		WithProvider(p),
		WithRepository(r),
		WithIDGenerator(func() uuid.UUID { return fixed }),
	)
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresDeps(t *testing.T) {
	_, err := NewService(WithProvider(&fakeProvider{}))
	require.Error(t, err)

	_, err = NewService(WithRepository(&memRepo{}))
	require.Error(t, err)
}

func TestService_Search(t *testing.T) {
	p := &fakeProvider{items: []map[string]any{
		item("low", float64(50000)),
		item("", float64(1)),
		item("high", float64(150000)),
		item("mid", float64(90000)),
	}}
	repo := &memRepo{}
	svc := newTestService(t, p, repo)

	res, err := svc.Search(context.Background(), SearchRequest{Keyword: " Python ", SortDesc: true, Limit: 2, Persist: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Python"}, p.keywords)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440001", res.SearchID.String())
	assert.Equal(t, 4, res.Fetched)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Vacancies, 2)
	assert.Equal(t, "high", res.Vacancies[0].Title())
	assert.Equal(t, "mid", res.Vacancies[1].Title())
	assert.Equal(t, 2, res.Stored)
	assert.Len(t, repo.records, 2)
}

func TestService_SearchWithoutPersist(t *testing.T) {
	p := &fakeProvider{items: []map[string]any{item("a", nil), item("b", float64(10))}}
	repo := &memRepo{}
	svc := newTestService(t, p, repo)

	res, err := svc.Search(context.Background(), SearchRequest{Keyword: "Go"})
	require.NoError(t, err)
	require.Len(t, res.Vacancies, 2)
	assert.Equal(t, "a", res.Vacancies[0].Title())
	assert.Zero(t, res.Stored)
	assert.Empty(t, repo.records)
}

func TestService_SearchErrors(t *testing.T) {
	svc := newTestService(t, &fakeProvider{}, &memRepo{})
	_, err := svc.Search(context.Background(), SearchRequest{Keyword: "  "})
	require.Error(t, err)

	boom := errors.New("boom")
	svc = newTestService(t, &fakeProvider{err: boom}, &memRepo{})
	_, err = svc.Search(context.Background(), SearchRequest{Keyword: "Go"})
	require.ErrorIs(t, err, boom)

	svc = newTestService(t, &fakeProvider{items: []map[string]any{item("a", nil)}}, &memRepo{addErr: boom})
	res, err := svc.Search(context.Background(), SearchRequest{Keyword: "Go", Persist: true})
	require.ErrorIs(t, err, boom)
	assert.Len(t, res.Vacancies, 1)
}

func TestService_ListAndDelete(t *testing.T) {
	repo := &memRepo{records: []domain.Record{
		{Title: "a", Company: "A", Link: "https://example.com/1"},
		{Title: "b", Company: "B", Link: "https://example.com/2"},
	}}
	svc := newTestService(t, &fakeProvider{}, repo)

	assert.Len(t, svc.List(context.Background()), 2)

	removed, err := svc.Delete(context.Background(), domain.Criteria{"link": "https://example.com/2"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = svc.Delete(context.Background(), domain.Criteria{"link": "https://nonexistent.com"})
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Len(t, svc.List(context.Background()), 1)
}
