package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// VacancySearchParams defines the arguments for the vacancy_search tool
type VacancySearchParams struct {
	Keyword string `json:"keyword" jsonschema:"Search text sent to hh.ru"`
	Sort    bool   `json:"sort,omitempty" jsonschema:"Order results by salary, highest first"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Keep at most this many vacancies, 0 keeps all"`
	Persist bool   `json:"persist,omitempty" jsonschema:"Store the results in the vacancies file"`
}

// VacancySearchResult summarizes a vacancy_search call
type VacancySearchResult struct {
	SearchID  string          `json:"search_id"`
	Fetched   int             `json:"fetched"`
	Skipped   int             `json:"skipped"`
	Stored    int             `json:"stored"`
	Vacancies []domain.Record `json:"vacancies"`
}

// VacancyListParams defines the arguments for the vacancy_list tool
type VacancyListParams struct{}

// VacancyListResult holds every stored vacancy
type VacancyListResult struct {
	Vacancies []domain.Record `json:"vacancies"`
}

// VacancyDeleteParams defines the arguments for the vacancy_delete tool
type VacancyDeleteParams struct {
	Criteria map[string]any `json:"criteria" jsonschema:"Field/value pairs; a vacancy is removed only when all of them match"`
}

// VacancyDeleteResult reports how many records were removed
type VacancyDeleteResult struct {
	Removed int `json:"removed"`
}

type vacancyTools struct {
	svc    vacancy.Service
	logger *logging.Logger
}

// WithVacancySearch registers the vacancy_search tool
func WithVacancySearch(svc vacancy.Service) Option {
	return func(reg *registry) {
		t := vacancyTools{svc: svc, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_search",
			Description: "Fetch vacancies from hh.ru, normalize them and optionally store them",
		}, t.search)
	}
}

// WithVacancyList registers the vacancy_list tool
func WithVacancyList(svc vacancy.Service) Option {
	return func(reg *registry) {
		t := vacancyTools{svc: svc, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_list",
			Description: "List stored vacancies",
		}, t.list)
	}
}

// WithVacancyDelete registers the vacancy_delete tool
func WithVacancyDelete(svc vacancy.Service) Option {
	return func(reg *registry) {
		t := vacancyTools{svc: svc, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_delete",
			Description: "Delete stored vacancies matching every given field",
		}, t.delete)
	}
}

func (t vacancyTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params VacancySearchParams) (*sdkmcp.CallToolResult, any, error) {
	if t.svc == nil {
		return nil, nil, fmt.Errorf("vacancy service not configured")
	}
	t.logger.Debug("vacancy_search called", "keyword", params.Keyword, "persist", params.Persist)

	res, err := t.svc.Search(ctx, vacancy.SearchRequest{
		Keyword:  params.Keyword,
		SortDesc: params.Sort,
		Limit:    params.Limit,
		Persist:  params.Persist,
	})
	if err != nil {
		t.logger.Error("vacancy_search failed", "err", err)
		return nil, nil, fmt.Errorf("vacancy search: %w", err)
	}

	result := VacancySearchResult{
		SearchID:  res.SearchID.String(),
		Fetched:   res.Fetched,
		Skipped:   res.Skipped,
		Stored:    res.Stored,
		Vacancies: make([]domain.Record, 0, len(res.Vacancies)),
	}
	for _, v := range res.Vacancies {
		result.Vacancies = append(result.Vacancies, v.Record())
	}

	msg := fmt.Sprintf("[vacancy_search] %d vacancies for %q (%d skipped)", len(result.Vacancies), params.Keyword, result.Skipped)
	if params.Persist {
		msg += fmt.Sprintf(", %d stored in total", result.Stored)
	}
	return textResult(msg), result, nil
}

func (t vacancyTools) list(ctx context.Context, _ *sdkmcp.CallToolRequest, _ VacancyListParams) (*sdkmcp.CallToolResult, any, error) {
	if t.svc == nil {
		return nil, nil, fmt.Errorf("vacancy service not configured")
	}

	result := VacancyListResult{Vacancies: t.svc.List(ctx)}
	return textResult(fmt.Sprintf("[vacancy_list] %d stored vacancies", len(result.Vacancies))), result, nil
}

func (t vacancyTools) delete(ctx context.Context, _ *sdkmcp.CallToolRequest, params VacancyDeleteParams) (*sdkmcp.CallToolResult, any, error) {
	if t.svc == nil {
		return nil, nil, fmt.Errorf("vacancy service not configured")
	}
	if len(params.Criteria) == 0 {
		// an empty criteria set matches every record
		return nil, nil, fmt.Errorf("at least one criterion is required")
	}

	removed, err := t.svc.Delete(ctx, domain.Criteria(params.Criteria))
	if err != nil {
		t.logger.Error("vacancy_delete failed", "err", err)
		return nil, nil, err
	}

	result := VacancyDeleteResult{Removed: removed}
	return textResult(fmt.Sprintf("[vacancy_delete] removed %d vacancies", removed)), result, nil
}
