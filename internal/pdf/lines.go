package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// Y distance within which positioned text runs are treated as one line
	rowTolerance = 5.0

	// Extracted text is capped to keep pathological drawings bounded
	maxTextSize = 10 * 1024 * 1024
)

// Lines extracts the text lines of every drawing page using the given
// strategy. Pages that fail to extract are skipped rather than failing the
// whole drawing; drawings routinely carry a malformed title block page.
func (r *Reader) Lines(doc *Document, strategy string) ([]PageLines, error) {
	var pages []PageLines
	total := 0

	for pageNum := 1; pageNum <= doc.reader.NumPage(); pageNum++ {
		page := doc.reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		var lines []string
		var err error

		switch strategy {
		case StrategyPlain:
			lines, err = plainLines(page)
		case StrategyRows:
			lines, err = rowLines(page)
		case StrategyWords:
			lines, err = wordLines(page)
		default:
			return nil, fmt.Errorf("unknown extraction strategy: %s", strategy)
		}
		if err != nil {
			continue
		}

		for _, line := range lines {
			total += len(line)
		}
		if total > maxTextSize {
			break
		}

		if len(lines) > 0 {
			pages = append(pages, PageLines{Page: pageNum, Lines: lines})
		}
	}

	return pages, nil
}

// PlainText returns the concatenated plain text of the drawing, used for
// content type analysis
func (r *Reader) PlainText(doc *Document) string {
	var builder strings.Builder

	for pageNum := 1; pageNum <= doc.reader.NumPage(); pageNum++ {
		page := doc.reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if builder.Len()+len(content) > maxTextSize {
			break
		}
		builder.WriteString(content)
	}

	return builder.String()
}

// plainLines splits the page's plain text into trimmed lines
func plainLines(page pdf.Page) ([]string, error) {
	content, err := page.GetPlainText(nil)
	if err != nil {
		return nil, fmt.Errorf("plain text extraction failed: %w", err)
	}
	return splitLines(content), nil
}

// rowLines uses the library's row grouping, joining each row's text runs in
// X order
func rowLines(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("row extraction failed: %w", err)
	}

	var lines []string
	for _, row := range rows {
		runs := make([]pdf.Text, len(row.Content))
		copy(runs, row.Content)
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].X < runs[j].X
		})

		var parts []string
		for _, run := range runs {
			if s := strings.TrimSpace(run.S); s != "" {
				parts = append(parts, s)
			}
		}

		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// wordLines clusters the page's positioned text runs into lines by Y
// proximity, then orders each line by X. This recovers callouts that the
// plain and row strategies scatter, which happens with CAD-generated
// drawings that emit glyph runs out of reading order.
func wordLines(page pdf.Page) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("positioned extraction failed: %v", r)
		}
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return nil, nil
	}

	runs := make([]pdf.Text, len(content.Text))
	copy(runs, content.Text)

	return clusterRuns(runs), nil
}

// clusterRuns groups positioned text runs into reading-order lines
func clusterRuns(runs []pdf.Text) []string {
	// Top of page first, then left to right
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var lines []string
	var current []pdf.Text
	currentY := 0.0

	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.Slice(current, func(i, j int) bool {
			return current[i].X < current[j].X
		})

		var builder strings.Builder
		for i, run := range current {
			if i > 0 && needsSpace(current[i-1], run) {
				builder.WriteByte(' ')
			}
			builder.WriteString(run.S)
		}

		if line := strings.TrimSpace(builder.String()); line != "" {
			lines = append(lines, line)
		}
		current = current[:0]
	}

	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if len(current) > 0 && currentY-run.Y > rowTolerance {
			flush()
		}
		if len(current) == 0 {
			currentY = run.Y
		}
		current = append(current, run)
	}
	flush()

	return lines
}

// needsSpace reports whether a space separates two adjacent runs on a line.
// Runs that abut within a glyph width are fragments of one word.
func needsSpace(prev, next pdf.Text) bool {
	gap := next.X - (prev.X + prev.W)
	threshold := prev.FontSize * 0.3
	if threshold <= 0 {
		threshold = 1.0
	}
	return gap > threshold
}

// splitLines breaks extracted text into trimmed non-empty lines
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
