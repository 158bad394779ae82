package tableio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gyeh/healthdata/internal/model"
)

var (
	// ErrEmptyTable is returned when a file has no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrUnsupportedColumn is returned when a format cannot carry a column.
	ErrUnsupportedColumn = errors.New("column not supported by format")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// Format identifies an on-disk table encoding.
type Format int

const (
	CSV Format = iota
	Parquet
	XLSX
)

func (f Format) String() string {
	switch f {
	case Parquet:
		return "parquet"
	case XLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// FormatOf picks the encoding from the file extension; anything unknown is CSV.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return Parquet
	case ".xlsx":
		return XLSX
	default:
		return CSV
	}
}

// Read loads the whole table at path. Missing-value tokens become "".
func Read(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	var t *model.Table
	switch FormatOf(path) {
	case Parquet:
		t, err = readParquet(f)
	case XLSX:
		t, err = readXLSX(f)
	default:
		t, err = readCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", FormatOf(path), path, err)
	}
	return t, nil
}

// Write stores t at path, creating parent directories. The file is written to
// a temporary sibling and renamed into place, so a failed write leaves any
// previous file untouched and never a partial one.
func Write(path string, t *model.Table) error {
	var write func(io.Writer, *model.Table) error
	switch FormatOf(path) {
	case Parquet:
		write = writeParquet
	case XLSX:
		write = writeXLSX
	default:
		write = writeCSV
	}
	if err := writeAtomic(path, func(w io.Writer) error { return write(w, t) }); err != nil {
		return fmt.Errorf("write %s %s: %w", FormatOf(path), path, err)
	}
	return nil
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// header validates and cleans a header row: trims names, strips a UTF-8 BOM,
// rejects empty and duplicate names.
func header(cells []string) ([]string, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyTable
	}
	out := make([]string, len(cells))
	seen := make(map[string]bool, len(cells))
	for i, c := range cells {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate header column %q", c)
		}
		seen[c] = true
		out[i] = c
	}
	return out, nil
}
