package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

// searchAnswers is the resolved input of the search flow
type searchAnswers struct {
	Keyword string
	Sort    bool
	Output  string // data file name, empty prints to stdout instead
}

// resolveSearch fills the answers from flags and asks for whatever is
// missing when p is not nil
func resolveSearch(cmd searchCommand, p *prompter) (searchAnswers, error) {
	ans := searchAnswers{
		Keyword: strings.TrimSpace(cmd.Keyword),
		Output:  strings.TrimSpace(cmd.Output),
	}

	if ans.Keyword == "" {
		if p == nil {
			return ans, fmt.Errorf("keyword is required")
		}
		kw, err := p.ask("Enter a search keyword: ")
		if err != nil {
			return ans, fmt.Errorf("read keyword: %w", err)
		}
		if kw == "" {
			return ans, fmt.Errorf("keyword is required")
		}
		ans.Keyword = kw
	}

	switch {
	case cmd.Sort != "":
		yes, ok := parseYesNo(cmd.Sort)
		if !ok {
			return ans, fmt.Errorf("sort must be y or n, got %q", cmd.Sort)
		}
		ans.Sort = yes
	case p != nil:
		yes, err := p.askYesNo("Sort vacancies by salary? (y/n): ", false)
		if err != nil {
			return ans, fmt.Errorf("read sort preference: %w", err)
		}
		ans.Sort = yes
	}

	if ans.Output == "" && !cmd.Print && p != nil {
		name, err := p.ask("File name to save results (empty to print them): ")
		if err != nil {
			return ans, fmt.Errorf("read file name: %w", err)
		}
		ans.Output = name
	}

	return ans, nil
}

func runSearch(ctx context.Context, svc vacancy.Service, ans searchAnswers, limit int, out io.Writer) error {
	res, err := svc.Search(ctx, vacancy.SearchRequest{
		Keyword:  ans.Keyword,
		SortDesc: ans.Sort,
		Limit:    limit,
		Persist:  ans.Output != "",
	})
	if err != nil {
		return err
	}

	if ans.Output != "" {
		_, err := fmt.Fprintf(out, "Saved %d vacancies to %s (%d stored in total, %d skipped as invalid)\n",
			len(res.Vacancies), ans.Output, res.Stored, res.Skipped)
		return err
	}

	records := make([]domain.Record, 0, len(res.Vacancies))
	for _, v := range res.Vacancies {
		records = append(records, v.Record())
	}
	return printRecords(out, records)
}

func runList(ctx context.Context, svc vacancy.Service, out io.Writer) error {
	return printRecords(out, svc.List(ctx))
}

func runDelete(ctx context.Context, svc vacancy.Service, where []string, out io.Writer) error {
	criteria, err := parseCriteria(where)
	if err != nil {
		return err
	}

	removed, err := svc.Delete(ctx, criteria)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Removed %d vacancies\n", removed)
	return err
}

// parseCriteria turns key=value pairs into deletion criteria
func parseCriteria(pairs []string) (domain.Criteria, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one key=value criterion is required")
	}

	criteria := make(domain.Criteria, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("criterion %q must look like key=value", pair)
		}
		criteria[key] = value
	}

	return criteria, nil
}

func printRecords(out io.Writer, records []domain.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No vacancies found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tSALARY\tLINK")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, r.Company, formatSalary(r.SalaryMin, r.SalaryMax), r.Link)
	}
	return w.Flush()
}

func formatSalary(from, to *int) string {
	switch {
	case from != nil && to != nil && *from == *to:
		return strconv.Itoa(*from)
	case from != nil && to != nil:
		return strconv.Itoa(*from) + "-" + strconv.Itoa(*to)
	case from != nil:
		return "from " + strconv.Itoa(*from)
	case to != nil:
		return "up to " + strconv.Itoa(*to)
	}
	return "not specified"
}
