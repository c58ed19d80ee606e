package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet columns: question, answer, category, difficulty.
const (
	colQuestion = iota
	colAnswer
	colCategory
	colDifficulty
)

// XLSXSource reads questions from an Excel workbook.
type XLSXSource struct {
	Path  string
	Sheet string
	// StartRow is the first 1-based row holding data; the default 2 skips a header.
	StartRow int
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet, StartRow: 2}
}

func (s *XLSXSource) Name() string { return "xlsx" }

func (s *XLSXSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	start := s.StartRow
	if start < 1 {
		start = 1
	}

	rows := make([]Row, 0, len(cells))
	for i, cols := range cells {
		line := i + 1
		if line < start || blank(cols) {
			continue
		}
		rows = append(rows, Row{
			Line:       line,
			Question:   cell(cols, colQuestion),
			Answer:     cell(cols, colAnswer),
			Category:   cell(cols, colCategory),
			Difficulty: cell(cols, colDifficulty),
		})
	}
	return rows, nil
}

func cell(cols []string, idx int) string {
	if idx < len(cols) {
		return strings.TrimSpace(cols[idx])
	}
	return ""
}

func blank(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
