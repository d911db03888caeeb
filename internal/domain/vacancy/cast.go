package vacancy

import (
	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// Cast converts raw API payloads into vacancies. Payloads that fail
// validation are logged and skipped; the order of the rest is kept.
func Cast(items []map[string]any, log *logging.Logger) []domain.Vacancy {
	if log == nil {
		log = logging.NewNop()
	}

	out := make([]domain.Vacancy, 0, len(items))
	for i, item := range items {
		v, err := castOne(item)
		if err != nil {
			log.Warn("failed to process vacancy",
				"index", i,
				"id", stringField(item, "id"),
				"err", err,
			)
			continue
		}
		out = append(out, v)
	}

	return out
}

func castOne(item map[string]any) (domain.Vacancy, error) {
	title := stringField(item, "name")
	link := stringField(item, "alternate_url")

	company := ""
	if employer, ok := item["employer"].(map[string]any); ok {
		company = stringField(employer, "name")
	}

	var salary any
	switch s := item["salary"].(type) {
	case nil:
	case map[string]any:
		if len(s) > 0 {
			salary = map[string]any{"from": s["from"], "to": s["to"]}
		}
	default:
		salary = s
	}

	return domain.NewVacancy(title, company, salary, link)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
