package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Vacancy is a validated, immutable job listing
type Vacancy struct {
	title     string
	company   string
	salaryMin *int
	salaryMax *int
	link      string
}

// SalaryRange is an explicit from/to salary pair, either side may be absent
type SalaryRange struct {
	From *int
	To   *int
}

// NewVacancy validates the raw values and builds a Vacancy.
//
// salary accepts nil, an integer, a whole float (as decoded from JSON), a
// "min-max" or single-number string, a SalaryRange, or a map with optional
// "from" and "to" keys. link may be empty; otherwise it must be an absolute
// http(s) URL with a host.
func NewVacancy(title, company string, salary any, link string) (Vacancy, error) {
	salaryMin, salaryMax, err := parseSalary(salary)
	if err != nil {
		return Vacancy{}, err
	}

	if strings.TrimSpace(title) == "" {
		return Vacancy{}, invalid("title", "must be a non-empty string")
	}
	if strings.TrimSpace(company) == "" {
		return Vacancy{}, invalid("company", "must be a non-empty string")
	}
	if err := validateLink(link); err != nil {
		return Vacancy{}, err
	}

	return Vacancy{
		title:     title,
		company:   company,
		salaryMin: salaryMin,
		salaryMax: salaryMax,
		link:      link,
	}, nil
}

func (v Vacancy) Title() string   { return v.title }
func (v Vacancy) Company() string { return v.company }
func (v Vacancy) Link() string    { return v.link }

// SalaryMin returns the lower salary bound, nil when unknown
func (v Vacancy) SalaryMin() *int { return copyInt(v.salaryMin) }

// SalaryMax returns the upper salary bound, nil when unknown
func (v Vacancy) SalaryMax() *int { return copyInt(v.salaryMax) }

// ComparableSalary is the single value vacancies are ordered by: the lower
// bound, else the upper bound, else 0. A zero bound counts as unset.
func (v Vacancy) ComparableSalary() int {
	if v.salaryMin != nil && *v.salaryMin != 0 {
		return *v.salaryMin
	}
	if v.salaryMax != nil && *v.salaryMax != 0 {
		return *v.salaryMax
	}
	return 0
}

// Record converts the vacancy into its stored form
func (v Vacancy) Record() Record {
	return Record{
		Title:     v.title,
		Company:   v.company,
		SalaryMin: copyInt(v.salaryMin),
		SalaryMax: copyInt(v.salaryMax),
		Link:      v.link,
	}
}

func (v Vacancy) String() string {
	return fmt.Sprintf("Vacancy(%s, %s, %s-%s)", v.title, v.company, formatBound(v.salaryMin), formatBound(v.salaryMax))
}

// CompareBySalary orders vacancies by ComparableSalary only
func CompareBySalary(a, b Vacancy) int {
	return cmp.Compare(a.ComparableSalary(), b.ComparableSalary())
}

// SortBySalary sorts in place, keeping the input order of equal salaries
func SortBySalary(vacancies []Vacancy, desc bool) {
	slices.SortStableFunc(vacancies, func(a, b Vacancy) int {
		if desc {
			return CompareBySalary(b, a)
		}
		return CompareBySalary(a, b)
	})
}

func parseSalary(salary any) (*int, *int, error) {
	switch s := salary.(type) {
	case nil:
		return nil, nil, nil
	case string:
		return parseSalaryString(s)
	case SalaryRange:
		return copyInt(s.From), copyInt(s.To), nil
	case *SalaryRange:
		if s == nil {
			return nil, nil, nil
		}
		return copyInt(s.From), copyInt(s.To), nil
	case map[string]any:
		from, err := optionalInt(s["from"])
		if err != nil {
			return nil, nil, err
		}
		to, err := optionalInt(s["to"])
		if err != nil {
			return nil, nil, err
		}
		return from, to, nil
	case map[string]int:
		var from, to *int
		if v, ok := s["from"]; ok {
			from = &v
		}
		if v, ok := s["to"]; ok {
			to = &v
		}
		return from, to, nil
	}

	n, ok, err := asInt(salary)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, invalid("salary", "unsupported format %T", salary)
	}
	return &n, copyInt(&n), nil
}

func parseSalaryString(s string) (*int, *int, error) {
	parts := strings.Split(s, "-")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, nil, invalid("salary", "malformed value %q", s)
		}
		nums = append(nums, n)
	}

	low := nums[0]
	high := low
	if len(nums) > 1 {
		high = nums[1]
	}
	return &low, &high, nil
}

func optionalInt(v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, ok, err := asInt(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalid("salary", "bound must be a number, got %T", v)
	}
	return &n, nil
}

// asInt reports ok=false for non-numeric types
func asInt(v any) (int, bool, error) {
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int32:
		return int(n), true, nil
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, true, invalid("salary", "%d is out of range", n)
		}
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, true, invalid("salary", "%v is not a whole number", n)
		}
		// float64(math.MaxInt) rounds up to 2^63, which int cannot hold
		if n >= math.MaxInt || n < math.MinInt {
			return 0, true, invalid("salary", "%v is out of range", n)
		}
		return int(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, true, invalid("salary", "%s is not a whole number", n)
		}
		return asInt(i)
	}
	return 0, false, nil
}

func validateLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return invalid("link", "%q is not a URL", link)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("link", "%q must use http or https", link)
	}
	if u.Host == "" {
		return invalid("link", "%q has no host", link)
	}
	return nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func formatBound(p *int) string {
	if p == nil {
		return "None"
	}
	return strconv.Itoa(*p)
}
