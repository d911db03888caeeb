package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

type stubService struct {
	lastReq      vacancy.SearchRequest
	lastCriteria domain.Criteria
	records      []domain.Record
	err          error
}

func (s *stubService) Search(_ context.Context, req vacancy.SearchRequest) (vacancy.SearchResult, error) {
	s.lastReq = req
	if s.err != nil {
		return vacancy.SearchResult{}, s.err
	}
	v, err := domain.NewVacancy("Go Developer", "Acme", "100-200", "https://hh.ru/vacancy/1")
	if err != nil {
		return vacancy.SearchResult{}, err
	}
	return vacancy.SearchResult{
		SearchID:  uuid.MustParse("550e8400-e29b-41d4-a716-446655440002"),
		Vacancies: []domain.Vacancy{v},
		Fetched:   2,
		Skipped:   1,
		Stored:    5,
	}, nil
}

func (s *stubService) List(context.Context) []domain.Record {
	return s.records
}

func (s *stubService) Delete(_ context.Context, criteria domain.Criteria) (int, error) {
	s.lastCriteria = criteria
	return 1, s.err
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestVacancySearch(t *testing.T) {
	svc := &stubService{}
	tools := vacancyTools{svc: svc, logger: logging.NewNop()}

	res, out, err := tools.search(context.Background(), nil, VacancySearchParams{Keyword: "Go", Sort: true, Limit: 10, Persist: true})
	require.NoError(t, err)

	assert.Equal(t, vacancy.SearchRequest{Keyword: "Go", SortDesc: true, Limit: 10, Persist: true}, svc.lastReq)
	assert.Contains(t, textOf(t, res), `1 vacancies for "Go" (1 skipped), 5 stored in total`)

	result, ok := out.(VacancySearchResult)
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440002", result.SearchID)
	require.Len(t, result.Vacancies, 1)
	assert.Equal(t, "https://hh.ru/vacancy/1", result.Vacancies[0].Link)
}

func TestVacancySearch_Error(t *testing.T) {
	boom := errors.New("boom")
	tools := vacancyTools{svc: &stubService{err: boom}, logger: logging.NewNop()}

	_, _, err := tools.search(context.Background(), nil, VacancySearchParams{Keyword: "Go"})
	require.ErrorIs(t, err, boom)

	_, _, err = vacancyTools{logger: logging.NewNop()}.search(context.Background(), nil, VacancySearchParams{})
	require.Error(t, err)
}

func TestVacancyList(t *testing.T) {
	svc := &stubService{records: []domain.Record{{Title: "a"}, {Title: "b"}}}
	tools := vacancyTools{svc: svc, logger: logging.NewNop()}

	res, out, err := tools.list(context.Background(), nil, VacancyListParams{})
	require.NoError(t, err)
	assert.Equal(t, "[vacancy_list] 2 stored vacancies", textOf(t, res))
	assert.Len(t, out.(VacancyListResult).Vacancies, 2)
}

func TestVacancyDelete(t *testing.T) {
	svc := &stubService{}
	tools := vacancyTools{svc: svc, logger: logging.NewNop()}

	_, _, err := tools.delete(context.Background(), nil, VacancyDeleteParams{})
	require.Error(t, err)

	res, out, err := tools.delete(context.Background(), nil, VacancyDeleteParams{Criteria: map[string]any{"link": "https://hh.ru/vacancy/1"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Criteria{"link": "https://hh.ru/vacancy/1"}, svc.lastCriteria)
	assert.Equal(t, VacancyDeleteResult{Removed: 1}, out)
	assert.Equal(t, "[vacancy_delete] removed 1 vacancies", textOf(t, res))
}

func TestRegisterAll(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	assert.NotPanics(t, func() {
		RegisterAll(server, &stubService{}, nil)
	})
}
