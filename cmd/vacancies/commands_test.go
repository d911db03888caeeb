package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

type fakeService struct {
	req      vacancy.SearchRequest
	criteria domain.Criteria
	found    []domain.Vacancy
	stored   []domain.Record
	err      error
}

func (f *fakeService) Search(_ context.Context, req vacancy.SearchRequest) (vacancy.SearchResult, error) {
	f.req = req
	if f.err != nil {
		return vacancy.SearchResult{}, f.err
	}
	return vacancy.SearchResult{Vacancies: f.found, Fetched: len(f.found) + 1, Skipped: 1, Stored: 7}, nil
}

func (f *fakeService) List(context.Context) []domain.Record { return f.stored }

func (f *fakeService) Delete(_ context.Context, criteria domain.Criteria) (int, error) {
	f.criteria = criteria
	return 2, f.err
}

func intPtr(v int) *int { return &v }

func mustVacancy(t *testing.T, title string, salary any) domain.Vacancy {
	t.Helper()
	v, err := domain.NewVacancy(title, "Acme", salary, "https://hh.ru/vacancy/"+title)
	require.NoError(t, err)
	return v
}

func TestResolveSearch_FlagsOnly(t *testing.T) {
	ans, err := resolveSearch(searchCommand{Keyword: " golang ", Sort: "y", Output: "go.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, searchAnswers{Keyword: "golang", Sort: true, Output: "go.json"}, ans)

	ans, err = resolveSearch(searchCommand{Keyword: "golang", Print: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, searchAnswers{Keyword: "golang"}, ans)
}

func TestResolveSearch_Errors(t *testing.T) {
	_, err := resolveSearch(searchCommand{}, nil)
	require.Error(t, err)

	_, err = resolveSearch(searchCommand{Keyword: "go", Sort: "maybe"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe")

	var out bytes.Buffer
	_, err = resolveSearch(searchCommand{}, newPrompter(strings.NewReader("\n"), &out))
	require.Error(t, err)
}

func TestResolveSearch_Prompts(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("python\nmaybe\nда\nresults.json\n"), &out)

	ans, err := resolveSearch(searchCommand{}, p)
	require.NoError(t, err)
	assert.Equal(t, searchAnswers{Keyword: "python", Sort: true, Output: "results.json"}, ans)
	assert.Contains(t, out.String(), "Enter a search keyword")
	assert.Contains(t, out.String(), "please answer y or n")
}

func TestResolveSearch_PrintSkipsFilePrompt(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("n\n"), &out)

	ans, err := resolveSearch(searchCommand{Keyword: "go", Print: true}, p)
	require.NoError(t, err)
	assert.Equal(t, searchAnswers{Keyword: "go"}, ans)
	assert.NotContains(t, out.String(), "File name")
}

func TestRunSearch_Prints(t *testing.T) {
	svc := &fakeService{found: []domain.Vacancy{mustVacancy(t, "go", "100-200")}}
	var out bytes.Buffer

	require.NoError(t, runSearch(context.Background(), svc, searchAnswers{Keyword: "go", Sort: true}, 5, &out))

	assert.Equal(t, vacancy.SearchRequest{Keyword: "go", SortDesc: true, Limit: 5}, svc.req)
	assert.Contains(t, out.String(), "TITLE")
	assert.Contains(t, out.String(), "100-200")
	assert.Contains(t, out.String(), "https://hh.ru/vacancy/go")
}

func TestRunSearch_Persists(t *testing.T) {
	svc := &fakeService{found: []domain.Vacancy{mustVacancy(t, "go", nil)}}
	var out bytes.Buffer

	require.NoError(t, runSearch(context.Background(), svc, searchAnswers{Keyword: "go", Output: "go.json"}, 0, &out))

	assert.True(t, svc.req.Persist)
	assert.Equal(t, "Saved 1 vacancies to go.json (7 stored in total, 1 skipped as invalid)\n", out.String())
}

func TestRunSearch_Error(t *testing.T) {
	boom := errors.New("boom")
	err := runSearch(context.Background(), &fakeService{err: boom}, searchAnswers{Keyword: "go"}, 0, &bytes.Buffer{})
	require.ErrorIs(t, err, boom)
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), &fakeService{}, &out))
	assert.Equal(t, "No vacancies found\n", out.String())

	out.Reset()
	svc := &fakeService{stored: []domain.Record{
		{Title: "Go Developer", Company: "Acme", SalaryMin: intPtr(100), Link: "https://hh.ru/vacancy/1"},
	}}
	require.NoError(t, runList(context.Background(), svc, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "from 100")
}

func TestRunDelete(t *testing.T) {
	svc := &fakeService{}
	var out bytes.Buffer

	require.NoError(t, runDelete(context.Background(), svc, []string{"company=Acme", "title = Go"}, &out))
	assert.Equal(t, domain.Criteria{"company": "Acme", "title": " Go"}, svc.criteria)
	assert.Equal(t, "Removed 2 vacancies\n", out.String())

	require.Error(t, runDelete(context.Background(), svc, nil, &out))
}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    domain.Criteria
		wantErr bool
	}{
		{name: "single", pairs: []string{"link=https://hh.ru/vacancy/1?a=b"}, want: domain.Criteria{"link": "https://hh.ru/vacancy/1?a=b"}},
		{name: "empty value", pairs: []string{"salaryMin="}, want: domain.Criteria{"salaryMin": ""}},
		{name: "missing separator", pairs: []string{"title"}, wantErr: true},
		{name: "missing key", pairs: []string{"=x"}, wantErr: true},
		{name: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCriteria(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "100", formatSalary(intPtr(100), intPtr(100)))
	assert.Equal(t, "100-200", formatSalary(intPtr(100), intPtr(200)))
	assert.Equal(t, "from 100", formatSalary(intPtr(100), nil))
	assert.Equal(t, "up to 200", formatSalary(nil, intPtr(200)))
	assert.Equal(t, "not specified", formatSalary(nil, nil))
}
