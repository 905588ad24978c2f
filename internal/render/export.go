package render

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"econcharts/internal/frame"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes tab to path as UTF-8 with a byte order mark, so spreadsheet
// tools detect the encoding. An empty tab yields the header row only.
func CSV(path string, tab frame.Tabular) error {
	slog.Debug("writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", tab.Len()))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(tab.Header()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i := 0; i < tab.Len(); i++ {
		if err := writer.Write(plainRow(tab.Row(i))); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// plainRow renders cells at full precision; missing values are empty.
func plainRow(cells []frame.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		switch {
		case !c.Numeric:
			out[i] = c.Text
		case c.Value.Valid:
			out[i] = strconv.FormatFloat(c.Value.Float, 'f', -1, 64)
		}
	}
	return out
}

// XLSX writes tab to a single-sheet workbook at path. Numbers are stored as
// numbers; an empty tab gets a "No data" row under the header.
func XLSX(path, sheet string, tab frame.Tabular) error {
	slog.Debug("writing XLSX file",
		slog.String("file_path", path),
		slog.Int("record_count", tab.Len()))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, 0, len(tab.Header()))
	for _, h := range tab.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	if tab.Len() == 0 {
		if err := f.SetCellValue(sheet, "A2", NoData); err != nil {
			return err
		}
	}
	for i := 0; i < tab.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := xlsxRow(tab.Row(i))
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func xlsxRow(cells []frame.Cell) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		switch {
		case !c.Numeric:
			out[i] = c.Text
		case c.Value.Valid:
			out[i] = c.Value.Float
		default:
			out[i] = nil
		}
	}
	return out
}
