// Package pdftest assembles minimal single-page drawing PDFs for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Drawing builds a one-page PDF whose text content is the given lines,
// laid out top to bottom. The document carries a plain uncompressed
// content stream and a cross-reference table, enough to pass structural
// validation and text extraction.
func Drawing(lines ...string) []byte {
	var text strings.Builder
	text.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			text.WriteString("0 -24 Td\n")
		}
		fmt.Fprintf(&text, "(%s) Tj\n", escapeText(line))
	}
	text.WriteString("ET")

	content := text.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)

	return buf.Bytes()
}

// WriteDrawing writes a drawing PDF into dir and returns its path
func WriteDrawing(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Drawing(lines...), 0o644); err != nil {
		t.Fatalf("failed to write drawing %s: %v", path, err)
	}
	return path
}

// escapeText encodes a line as a PDF literal string in WinAnsiEncoding.
// Runes outside the encoding are dropped.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '±':
			b.WriteString(`\261`)
		case r == 'Ø':
			b.WriteString(`\330`)
		case r == '°':
			b.WriteString(`\260`)
		case r < 0x80:
			b.WriteRune(r)
		}
	}
	return b.String()
}
