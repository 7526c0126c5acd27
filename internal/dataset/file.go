package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"archviz/pkg/geometry"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by this package.
const SheetName = "coords"

// ErrUnsupportedFormat is returned for file extensions other than .xlsx and .csv.
var ErrUnsupportedFormat = errors.New("unsupported dataset file format")

// Read loads a dataset from an .xlsx or .csv file. Column names are matched
// case-insensitively. Rows whose x or y cell is not numeric, or whose
// coordinates are not finite, are skipped.
func Read(path string) (*Dataset, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		header, rows, err = readXLSX(path)
	case ".csv":
		header, rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	return fromRecords(header, rows), nil
}

// Write stores the dataset as .xlsx or .csv depending on the extension.
func Write(path string, ds *Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := NewWorkbook(ds)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		return nil
	case ".csv":
		return writeCSV(path, ds)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// NewWorkbook builds an in-memory workbook with the dataset on the coords sheet.
// The caller owns the returned file and must close it.
func NewWorkbook(ds *Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range ds.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := rowValues(ds.Columns, p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

func rowValues(columns []string, p geometry.Point) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		switch c {
		case ColumnX:
			row[i] = p.X
		case ColumnY:
			row[i] = p.Y
		case ColumnZ:
			row[i] = p.Z
		case ColumnType:
			row[i] = p.Type
		}
	}
	return row
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	recs, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(recs) == 0 {
		return nil, nil, errors.New("xlsx: empty sheet")
	}
	return recs[0], recs[1:], nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil, errors.New("empty csv")
	}
	return recs[0], recs[1:], nil
}

func writeCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return err
	}
	for _, p := range ds.Points {
		vals := rowValues(ds.Columns, p)
		rec := make([]string, len(vals))
		for i, v := range vals {
			switch v := v.(type) {
			case float64:
				rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
			case string:
				rec[i] = v
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// fromRecords maps a header and raw rows onto the shared schema.
func fromRecords(header []string, rows [][]string) *Dataset {
	idx := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, c := range schemaOrder {
			if name == c {
				if _, dup := idx[c]; !dup {
					idx[c] = i
				}
			}
		}
	}

	ds := &Dataset{}
	for _, c := range schemaOrder {
		if _, ok := idx[c]; ok {
			ds.Columns = append(ds.Columns, c)
		}
	}

	cell := func(row []string, col string) (string, bool) {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}
	number := func(row []string, col string) (float64, bool) {
		s, ok := cell(row, col)
		if !ok || s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}

	_, hasX := idx[ColumnX]
	_, hasY := idx[ColumnY]
	for _, row := range rows {
		var p geometry.Point
		if hasX {
			x, ok := number(row, ColumnX)
			if !ok {
				continue
			}
			p.X = x
		}
		if hasY {
			y, ok := number(row, ColumnY)
			if !ok {
				continue
			}
			p.Y = y
		}
		p.Z, _ = number(row, ColumnZ)
		p.Type, _ = cell(row, ColumnType)
		if !p.Finite() {
			continue
		}
		ds.Points = append(ds.Points, p)
	}
	return ds
}
