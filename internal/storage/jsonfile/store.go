package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// DefaultFileName is used when no file name is given
const DefaultFileName = "vacancies.json"

var errNotObject = errors.New("not a JSON object")

// Ensure Store implements vacancy.Repository
var _ vacancy.Repository = (*Store)(nil)

// Store keeps vacancy records as a JSON array in a single file.
//
// Every write rewrites the whole file. There is no locking, so concurrent
// writers to the same path can lose each other's updates.
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates dir and an empty file named filename inside it when they
// do not exist yet
func NewStore(dir, filename string, logger *logging.Logger) (*Store, error) {
	if filename == "" {
		filename = DefaultFileName
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: create data file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("jsonfile: create data file: %w", err)
	}

	return &Store{
		path:   path,
		logger: logger.With("path", path),
	}, nil
}

// Path returns the location of the data file
func (s *Store) Path() string {
	return s.path
}

// GetData reads every stored record. A missing, empty or malformed file
// reads as no records; array elements that do not fit the record shape are
// skipped.
func (s *Store) GetData(ctx context.Context) []domain.Record {
	entries := s.load(ctx)

	records := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		if e.raw == nil {
			records = append(records, e.rec)
		}
	}
	return records
}

// AddData appends vacancies whose link is not stored yet. Duplicates are
// dropped silently.
func (s *Store) AddData(ctx context.Context, vacancies []domain.Vacancy) error {
	existing := s.load(ctx)

	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.link()] = struct{}{}
	}

	combined := existing
	dropped := 0
	for _, v := range vacancies {
		rec := v.Record()
		if _, dup := seen[rec.Link]; dup {
			dropped++
			continue
		}
		combined = append(combined, entry{rec: rec})
	}

	if err := s.write(combined); err != nil {
		return err
	}

	s.logger.Debug("vacancies added",
		"added", len(vacancies)-dropped,
		"duplicates", dropped,
		"total", len(combined),
	)
	return nil
}

// DeleteData removes every record that matches all criteria. Elements that
// do not fit the record shape never match and are written back unchanged.
func (s *Store) DeleteData(ctx context.Context, criteria domain.Criteria) error {
	existing := s.load(ctx)

	kept := make([]entry, 0, len(existing))
	for _, e := range existing {
		if e.raw == nil && criteria.Match(e.rec) {
			continue
		}
		kept = append(kept, e)
	}

	if err := s.write(kept); err != nil {
		return err
	}

	s.logger.Debug("vacancies deleted", "removed", len(existing)-len(kept), "total", len(kept))
	return nil
}

// entry is one element of the stored array; raw is set when the element
// could not be decoded as a record and must be written back as is
type entry struct {
	rec     domain.Record
	raw     json.RawMessage
	rawLink string
}

func (e entry) link() string {
	if e.raw != nil {
		return e.rawLink
	}
	return e.rec.Link
}

func (e entry) value() any {
	if e.raw != nil {
		return e.raw
	}
	return e.rec
}

func (s *Store) load(ctx context.Context) []entry {
	_ = ctx

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read data file", "err", err)
		}
		return []entry{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		if len(bytes.TrimSpace(data)) > 0 {
			s.logger.Warn("data file is not a valid JSON array, treating as empty", "err", err)
		}
		return []entry{}
	}

	entries := make([]entry, 0, len(elems))
	for i, raw := range elems {
		var rec domain.Record
		err := errNotObject
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
			err = json.Unmarshal(raw, &rec)
		}
		if err == nil {
			entries = append(entries, entry{rec: rec})
			continue
		}

		s.logger.Warn("keeping stored element that is not a vacancy record", "index", i, "err", err)
		var loose struct {
			Link any `json:"link"`
		}
		_ = json.Unmarshal(raw, &loose)
		link, _ := loose.Link.(string)
		entries = append(entries, entry{raw: raw, rawLink: link})
	}

	return entries
}

func (s *Store) write(entries []entry) error {
	values := make([]any, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.value())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("jsonfile: encode records: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("jsonfile: write data file: %w", err)
	}
	return nil
}
