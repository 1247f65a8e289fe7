package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dimsheet/dimsheet/internal/dimension"
)

const (
	dimensionsSheet = "Dimensions"
	summarySheet    = "Summary"

	headerFillColor = "D7E4BC"
	maxColumnWidth  = 20.0
)

// Options controls the exported column set
type Options struct {
	IncludePages bool
}

// Headers returns the spreadsheet column headers
func Headers(opts Options) []string {
	headers := []string{"Sr. No.", "Parameter", "Nominal Value", "Tolerance", "Type (C/S)", "Instrument"}
	if opts.IncludePages {
		headers = append(headers, "Page")
	}
	return headers
}

// Workbook builds the inspection spreadsheet: a Dimensions sheet with one
// row per callout and a Summary sheet with the parameter distribution
func Workbook(dims []dimension.Dimension, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", dimensionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create dimensions sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeDimensionsSheet(f, dims, opts, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, dims, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

// Write streams the spreadsheet for the given dimensions to w
func Write(w io.Writer, dims []dimension.Dimension, opts Options) error {
	f, err := Workbook(dims, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Filename builds the download name for a drawing's export
func Filename(drawing, ext string) string {
	base := strings.TrimSuffix(filepath.Base(drawing), filepath.Ext(drawing))
	if base == "" {
		base = "drawing"
	}
	return fmt.Sprintf("extracted_dimensions_%s.%s", base, ext)
}

func writeDimensionsSheet(f *excelize.File, dims []dimension.Dimension, opts Options, headerStyle int) error {
	headers := Headers(opts)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(dimensionsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, dim := range dims {
		row := cellsFor(dim, opts)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if value == nil {
				continue
			}
			if err := f.SetCellValue(dimensionsSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := styleHeader(f, dimensionsSheet, len(headers), headerStyle); err != nil {
		return err
	}
	return fitColumns(f, dimensionsSheet, headers, rowsAsText(dims, opts))
}

func writeSummarySheet(f *excelize.File, dims []dimension.Dimension, headerStyle int) error {
	headers := []string{"Parameter Type", "Count"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, cell, header); err != nil {
			return fmt.Errorf("failed to write summary header: %w", err)
		}
	}

	counts := parameterCounts(dims)
	text := make([][]string, 0, len(counts))
	for rowIdx, pc := range counts {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowIdx+2), pc.parameter); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowIdx+2), pc.count); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		text = append(text, []string{pc.parameter, fmt.Sprintf("%d", pc.count)})
	}

	if err := styleHeader(f, summarySheet, len(headers), headerStyle); err != nil {
		return err
	}
	return fitColumns(f, summarySheet, headers, text)
}

func styleHeader(f *excelize.File, sheet string, columns, style int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to address header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

// fitColumns sizes each column to its longest cell plus padding, capped
func fitColumns(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for col, header := range headers {
		width := float64(len(header))
		for _, row := range rows {
			if col < len(row) && float64(len(row[col])) > width {
				width = float64(len(row[col]))
			}
		}

		width += 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to name column: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}

// cellsFor builds one spreadsheet row. A nil entry leaves the cell empty.
func cellsFor(dim dimension.Dimension, opts Options) []any {
	var nominal any
	if dim.Nominal != nil {
		nominal = *dim.Nominal
	}

	row := []any{dim.Balloon, dim.Parameter, nominal, dim.Tolerance, dim.Type, dim.Instrument}
	if opts.IncludePages {
		row = append(row, fmt.Sprintf("Page %d", dim.Page))
	}
	return row
}

type paramCount struct {
	parameter string
	count     int
}

// parameterCounts orders the distribution by count descending
func parameterCounts(dims []dimension.Dimension) []paramCount {
	byParam := map[string]int{}
	for _, dim := range dims {
		byParam[dim.Parameter]++
	}

	counts := make([]paramCount, 0, len(byParam))
	for parameter, count := range byParam {
		counts = append(counts, paramCount{parameter: parameter, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].parameter < counts[j].parameter
	})

	return counts
}
