package vacancy

import (
	"context"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
)

// Repository persists vacancies and loads them back as records
type Repository interface {
	// GetData returns every stored record; unreadable storage reads as empty
	GetData(ctx context.Context) []domain.Record

	// AddData appends vacancies whose link is not stored yet
	AddData(ctx context.Context, vacancies []domain.Vacancy) error

	// DeleteData removes every record matching all criteria
	DeleteData(ctx context.Context, criteria domain.Criteria) error
}
