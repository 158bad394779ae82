package tableio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthdata/internal/model"
)

// columnsMetadataKey stores the table's column order; the Parquet schema
// itself always carries every PatientRow field.
const columnsMetadataKey = "healthdata.columns"

const readBatchSize = 1024

func readParquet(f *os.File) (*model.Table, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	cols, err := parquetColumns(pf)
	if err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[model.PatientRow](pf)
	defer reader.Close()

	t := model.NewTable(cols)
	buf := make([]model.PatientRow, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if err := t.AppendRow(buf[i].Cells(cols)); err != nil {
				return nil, err
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return t, nil
}

// parquetColumns resolves the column order from metadata, falling back to the
// file schema for files this tool did not write.
func parquetColumns(pf *parquet.File) ([]string, error) {
	if v, ok := pf.Lookup(columnsMetadataKey); ok && v != "" {
		cols, err := header(strings.Split(v, ","))
		if err != nil {
			return nil, err
		}
		return cols, checkPatientColumns(cols)
	}

	var names []string
	for _, field := range pf.Schema().Fields() {
		names = append(names, field.Name())
	}
	cols, err := header(names)
	if err != nil {
		return nil, err
	}
	return cols, checkPatientColumns(cols)
}

func writeParquet(w io.Writer, t *model.Table) error {
	if err := checkPatientColumns(t.Columns); err != nil {
		return err
	}

	rows := make([]model.PatientRow, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row, col, ok := model.PatientRowFromCells(t.Columns, cells)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedColumn, col)
		}
		rows = append(rows, row)
	}

	pw := parquet.NewGenericWriter[model.PatientRow](w,
		parquet.KeyValueMetadata(columnsMetadataKey, strings.Join(t.Columns, ",")),
	)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// checkPatientColumns rejects columns PatientRow has no field for.
func checkPatientColumns(cols []string) error {
	for _, c := range cols {
		if _, ok := model.ColumnByName(c); !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedColumn, c)
		}
	}
	return nil
}
