package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

// ExtractDataFromFile calls handler for every row of the first sheet of
// a CSV, XLS or XLSX file. Returning an error from handler aborts the
// extraction with that error.
func ExtractDataFromFile(path string, handler func(row []string) error) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ExtractDataFromXLSX(path, handler)
	case ".xls":
		return ExtractDataFromXLS(path, handler)
	default:
		return ExtractDataFromCSV(path, handler)
	}
}

func ExtractDataFromXLS(path string, handler func(row []string) error) error {
	slog.Debug("Loading XLS data", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return fmt.Errorf("could not read XLS file '%s': %w", path, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return fmt.Errorf("XLS file '%s' has no sheets", path)
	}

	slog.Debug("Sheet", "name", sheet.Name, "rows", sheet.MaxRow)

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		if err := handler(cols); err != nil {
			return err
		}
	}
	return nil
}

func ExtractDataFromXLSX(path string, handler func(row []string) error) error {
	slog.Debug("Loading XLSX data", "path", path)

	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return fmt.Errorf("could not read XLSX file '%s': %w", path, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("XLSX file '%s' has no sheets", path)
	}
	defaultSheet := sheets[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return fmt.Errorf("could not get rows for default sheet '%s': %w", defaultSheet, err)
	}

	slog.Debug("Sheet", "name", defaultSheet, "rows", len(rows))

	for _, r := range rows {
		if err := handler(r); err != nil {
			return err
		}
	}
	return nil
}

func ExtractDataFromCSV(path string, handler func(row []string) error) error {
	slog.Debug("Loading CSV data", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read CSV file '%s': %w", path, err)
		}
		if err := handler(row); err != nil {
			return err
		}
	}
}
