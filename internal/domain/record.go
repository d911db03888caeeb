package domain

import (
	"fmt"
	"strconv"
)

// Record is the persisted form of a vacancy
type Record struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	SalaryMin *int   `json:"salaryMin"`
	SalaryMax *int   `json:"salaryMax"`
	Link      string `json:"link"`
}

// Field returns the value stored under a JSON field name; unknown names
// report ok=false
func (r Record) Field(name string) (any, bool) {
	switch name {
	case "title":
		return r.Title, true
	case "company":
		return r.Company, true
	case "salaryMin":
		return r.SalaryMin, true
	case "salaryMax":
		return r.SalaryMax, true
	case "link":
		return r.Link, true
	}
	return nil, false
}

// Criteria selects records by field equality; every pair must match
type Criteria map[string]any

// Match compares the string form of each criterion with the record field.
// Absent fields and nil values both render as "null".
func (c Criteria) Match(r Record) bool {
	for key, want := range c {
		got, _ := r.Field(key)
		if stringify(got) != stringify(want) {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case *int:
		if t == nil {
			return "null"
		}
		return strconv.Itoa(*t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
