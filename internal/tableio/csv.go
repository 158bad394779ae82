package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gyeh/healthdata/internal/model"
)

func readCSV(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	// Every record must match the header width.
	cr.FieldsPerRecord = 0
	// A stray quote inside a cell (5'7") is a bad value, not a broken file.
	cr.LazyQuotes = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := header(head)
	if err != nil {
		return nil, err
	}

	t := model.NewTable(cols)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := t.AppendRow(rec); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return t, nil
}

func writeCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
