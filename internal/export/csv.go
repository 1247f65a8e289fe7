package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dimsheet/dimsheet/internal/dimension"
)

// WriteCSV streams the dimensions as CSV with the same column set as the
// spreadsheet
func WriteCSV(w io.Writer, dims []dimension.Dimension, opts Options) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Headers(opts)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rowsAsText(dims, opts) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// rowsAsText renders each dimension as display strings, the shared shape
// for CSV rows, column sizing, and the CLI table
func rowsAsText(dims []dimension.Dimension, opts Options) [][]string {
	rows := make([][]string, 0, len(dims))
	for _, dim := range dims {
		nominal := ""
		if dim.Nominal != nil {
			nominal = strconv.FormatFloat(*dim.Nominal, 'g', -1, 64)
		}

		row := []string{
			strconv.Itoa(dim.Balloon),
			dim.Parameter,
			nominal,
			dim.Tolerance,
			dim.Type,
			dim.Instrument,
		}
		if opts.IncludePages {
			row = append(row, fmt.Sprintf("Page %d", dim.Page))
		}
		rows = append(rows, row)
	}
	return rows
}

// Rows exposes the display rows for table rendering
func Rows(dims []dimension.Dimension, opts Options) [][]string {
	return rowsAsText(dims, opts)
}
