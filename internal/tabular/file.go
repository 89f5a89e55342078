package tabular

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// FileStore keeps each entity in a redundant xlsx/csv file pair under a
// single data directory. The spreadsheet is read first; the delimited file
// is a guaranteed fallback, so writes always refresh both.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Read(entity Entity) ([]Row, error) {
	if !entity.Valid() {
		return nil, fmt.Errorf("unknown entity %q", entity)
	}

	if data, err := os.ReadFile(s.path(entity, "xlsx")); err == nil {
		if rows, err := ParseXLSX(bytes.NewReader(data)); err == nil {
			return rows, nil
		}
	}
	if data, err := os.ReadFile(s.path(entity, "csv")); err == nil {
		if rows, err := ParseCSV(bytes.NewReader(data)); err == nil {
			return rows, nil
		}
	}
	// Neither format is present or readable: an empty catalog, not an error.
	return nil, nil
}

func (s *FileStore) Write(entity Entity, rows []Row) error {
	if !entity.Valid() {
		return fmt.Errorf("unknown entity %q", entity)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	normalized := Normalize(entity, rows)

	var errs error
	if data, err := EncodeXLSX(entity, normalized, ""); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode %s.xlsx: %w", entity, err))
	} else if err := os.WriteFile(s.path(entity, "xlsx"), data, 0o644); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("write %s.xlsx: %w", entity, err))
	}
	if data, err := EncodeCSV(entity, normalized); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode %s.csv: %w", entity, err))
	} else if err := os.WriteFile(s.path(entity, "csv"), data, 0o644); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("write %s.csv: %w", entity, err))
	}
	return errs
}

func (s *FileStore) path(entity Entity, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%s", entity, ext))
}
