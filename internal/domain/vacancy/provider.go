package vacancy

import (
	"context"
)

// Provider represents an external vacancy source such as the hh.ru API
type Provider interface {
	// e.g. "hh"
	Name() string

	// Connect checks that the source is reachable
	Connect(ctx context.Context) error

	// LoadVacancies returns raw, untyped vacancy payloads matching keyword
	LoadVacancies(ctx context.Context, keyword string) ([]map[string]any, error)
}
