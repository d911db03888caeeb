package vacancy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// SearchRequest describes a single fetch-normalize-store run
type SearchRequest struct {
	Keyword  string
	SortDesc bool // order by salary, highest first
	Limit    int  // keep at most Limit vacancies after sorting, 0 keeps all
	Persist  bool
}

// SearchResult summarizes a search run
type SearchResult struct {
	SearchID  uuid.UUID
	Vacancies []domain.Vacancy
	Fetched   int // raw payloads returned by the provider
	Skipped   int // payloads that failed validation
	Stored    int // records in the repository after persisting
}

type Service interface {
	Search(ctx context.Context, req SearchRequest) (SearchResult, error)
	List(ctx context.Context) []domain.Record
	Delete(ctx context.Context, criteria domain.Criteria) (int, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	repo     Repository
	logger   *logging.Logger
	newID    func() uuid.UUID
}

// WithProvider sets the vacancy source
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithIDGenerator overrides how search IDs are made
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(c *config) {
		c.newID = fn
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("vacancy.Service: repository is required")
	}
	if cfg.provider == nil {
		return nil, fmt.Errorf("vacancy.Service: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		provider: cfg.provider,
		repo:     cfg.repo,
		logger:   cfg.logger,
		newID:    cfg.newID,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, provider Provider, logger *logging.Logger) (Service, error) {
	return NewService(
		WithRepository(repo),
		WithProvider(provider),
		WithLogger(logger),
	)
}

type service struct {
	provider Provider
	repo     Repository
	logger   *logging.Logger
	newID    func() uuid.UUID
}

// Search loads vacancies from the provider, normalizes them and optionally
// stores them
func (s *service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return SearchResult{}, fmt.Errorf("keyword is required")
	}

	id := s.newID()
	log := s.logger.With("search_id", id.String(), "provider", s.provider.Name())
	log.Info("loading vacancies", "keyword", keyword)

	raw, err := s.provider.LoadVacancies(ctx, keyword)
	if err != nil {
		log.Error("failed to load vacancies", "err", err)
		return SearchResult{}, fmt.Errorf("load vacancies: %w", err)
	}

	vacancies := Cast(raw, log)
	result := SearchResult{
		SearchID: id,
		Fetched:  len(raw),
		Skipped:  len(raw) - len(vacancies),
	}

	if req.SortDesc {
		domain.SortBySalary(vacancies, true)
	}
	if req.Limit > 0 && len(vacancies) > req.Limit {
		vacancies = vacancies[:req.Limit]
	}
	result.Vacancies = vacancies

	if req.Persist {
		if err := s.repo.AddData(ctx, vacancies); err != nil {
			log.Error("failed to store vacancies", "err", err)
			return result, fmt.Errorf("store vacancies: %w", err)
		}
		result.Stored = len(s.repo.GetData(ctx))
	}

	log.Info("search completed",
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"returned", len(result.Vacancies),
		"stored", result.Stored,
	)

	return result, nil
}

// List returns every stored record
func (s *service) List(ctx context.Context) []domain.Record {
	return s.repo.GetData(ctx)
}

// Delete removes matching records and reports how many were removed
func (s *service) Delete(ctx context.Context, criteria domain.Criteria) (int, error) {
	before := len(s.repo.GetData(ctx))
	if err := s.repo.DeleteData(ctx, criteria); err != nil {
		return 0, fmt.Errorf("delete vacancies: %w", err)
	}
	removed := before - len(s.repo.GetData(ctx))

	s.logger.Info("vacancies deleted", "criteria", criteria, "removed", removed)
	return removed, nil
}
