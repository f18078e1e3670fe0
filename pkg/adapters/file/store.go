package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/exprgen/pkg/domain"
)

// FileNames maps a set to the CSV file it is written to.
var FileNames = map[domain.Set]string{
	domain.SetValid:   "valid_expressions.csv",
	domain.SetInvalid: "invalid_expressions.csv",
}

// Store implements ports.DatasetStore using CSV files on the local filesystem.
// Each run gets its own directory below BasePath unless Flat is set, in which
// case every run writes straight into BasePath and List reports no runs.
type Store struct {
	BasePath string
	Flat     bool
}

// Option configures the Store.
type Option func(*Store)

// WithFlatLayout writes the CSV files directly into the base path.
func WithFlatLayout() Option {
	return func(s *Store) {
		s.Flat = true
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the working directory.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = "."
	}
	s := &Store{BasePath: basePath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) dir(runID string) string {
	if s.Flat {
		return s.BasePath
	}
	return filepath.Join(s.BasePath, runID)
}

// Path returns the CSV file a set of a run is written to.
func (s *Store) Path(runID string, set domain.Set) string {
	return filepath.Join(s.dir(runID), FileNames[set])
}

// Save writes the rows as "expression,label" records atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, runID string, set domain.Set, rows []domain.Row) error {
	if runID == "" && !s.Flat {
		return fmt.Errorf("runID cannot be empty")
	}
	if _, ok := FileNames[set]; !ok {
		return fmt.Errorf("unknown dataset %q", set)
	}

	dir := s.dir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure dataset directory: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+string(set)+"-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	w := csv.NewWriter(tmpFile)
	for _, row := range rows {
		if err := w.Write([]string{row.Expression, row.Label}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path(runID, set)); err != nil {
		return fmt.Errorf("failed to rename dataset file: %w", err)
	}
	return nil
}

// Load reads the rows back.
func (s *Store) Load(ctx context.Context, runID string, set domain.Set) ([]domain.Row, error) {
	f, err := os.Open(s.Path(runID, set))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	rows := make([]domain.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.Row{Expression: rec[0], Label: rec[1]})
	}
	return rows, nil
}

// Delete removes the files of a run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if s.Flat {
		for set := range FileNames {
			if err := os.Remove(s.Path(runID, set)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to delete dataset file: %w", err)
			}
		}
		return nil
	}
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if err := os.RemoveAll(s.dir(runID)); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}
	return nil
}

// List returns the runs that have at least one dataset file.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.Flat {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var runs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for _, name := range FileNames {
			if _, err := os.Stat(filepath.Join(s.BasePath, entry.Name(), name)); err == nil {
				runs = append(runs, entry.Name())
				break
			}
		}
	}
	sort.Strings(runs)
	return runs, nil
}
