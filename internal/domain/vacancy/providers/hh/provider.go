package hh

import (
	"context"
	"fmt"

	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
)

// searchClient describes the subset of the hh client used by the provider.
type searchClient interface {
	Connect(ctx context.Context) error
	LoadVacancies(ctx context.Context, keyword string) ([]hh.Item, error)
}

// Provider implements vacancy.Provider using the hh.ru API
type Provider struct {
	client searchClient
}

// NewProvider builds an hh.ru provider
func NewProvider(client *hh.Client) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("hh provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "hh"
}

func (p *Provider) Connect(ctx context.Context) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("hh provider: client is nil")
	}
	return p.client.Connect(ctx)
}

// LoadVacancies returns the raw API payloads for keyword
func (p *Provider) LoadVacancies(ctx context.Context, keyword string) ([]map[string]any, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("hh provider: client is nil")
	}

	items, err := p.client.LoadVacancies(ctx, keyword)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

var _ vacancy.Provider = (*Provider)(nil)
