package tableio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/healthdata/internal/model"
)

const sheetName = "patients"

func readXLSX(r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	cols, err := header(rows[0])
	if err != nil {
		return nil, err
	}
	t := model.NewTable(cols)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		// GetRows drops trailing empty cells.
		if len(row) > len(cols) {
			return nil, fmt.Errorf("sheet row %d has %d cells, header has %d columns", i+2, len(row), len(cols))
		}
		cells := make([]string, len(cols))
		copy(cells, row)
		if err := t.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+2, err)
		}
	}
	return t, nil
}

func writeXLSX(w io.Writer, t *model.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := setRow(f, 1, t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}
