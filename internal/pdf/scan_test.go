package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_FindDrawings(t *testing.T) {
	scanner := NewScanner(1024 * 1024)

	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "released")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	files := map[string][]byte{
		filepath.Join(tempDir, "bracket.pdf"): make([]byte, 512),
		filepath.Join(nested, "housing.pdf"):  make([]byte, 256),
		filepath.Join(tempDir, "readme.txt"):  []byte("not a drawing"),
		filepath.Join(tempDir, "empty.pdf"):   {},
	}
	for path, data := range files {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}
	}

	drawings, err := scanner.FindDrawings(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(drawings) != 2 {
		t.Fatalf("expected 2 drawings, got %d", len(drawings))
	}

	names := map[string]bool{}
	for _, d := range drawings {
		names[d.Name] = true
		if d.Size == 0 {
			t.Errorf("expected non-zero size for %s", d.Name)
		}
	}
	if !names["bracket.pdf"] || !names["housing.pdf"] {
		t.Errorf("expected bracket.pdf and housing.pdf, got %v", names)
	}
}

func TestScanner_FindDrawings_Errors(t *testing.T) {
	scanner := NewScanner(1024 * 1024)

	if _, err := scanner.FindDrawings(""); err == nil {
		t.Errorf("expected error for empty directory")
	}
	if _, err := scanner.FindDrawings("/non/existent/dir"); err == nil {
		t.Errorf("expected error for non-existent directory")
	}
}

func TestScanner_Stats(t *testing.T) {
	scanner := NewScanner(1024 * 1024)

	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "small.pdf"), make([]byte, 100), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "large.pdf"), make([]byte, 300), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	stats, err := scanner.Stats(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalFiles != 2 {
		t.Errorf("expected 2 files, got %d", stats.TotalFiles)
	}
	if stats.TotalSize != 400 {
		t.Errorf("expected total size 400, got %d", stats.TotalSize)
	}
	if stats.LargestFileName != "large.pdf" {
		t.Errorf("expected largest file large.pdf, got %s", stats.LargestFileName)
	}
	if stats.AverageFileSize != 200 {
		t.Errorf("expected average size 200, got %d", stats.AverageFileSize)
	}
}

func TestScanner_Stats_EmptyDirectory(t *testing.T) {
	scanner := NewScanner(1024 * 1024)

	stats, err := scanner.Stats(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalFiles != 0 {
		t.Errorf("expected 0 files, got %d", stats.TotalFiles)
	}
	if stats.AverageFileSize != 0 {
		t.Errorf("expected average size 0, got %d", stats.AverageFileSize)
	}
}

func TestReader_OpenErrors(t *testing.T) {
	reader := NewReader(1024)

	if _, err := reader.OpenFile(""); err == nil {
		t.Errorf("expected error for empty path")
	}
	if _, err := reader.OpenFile("/non/existent/drawing.pdf"); err == nil {
		t.Errorf("expected error for non-existent file")
	}
	if _, err := reader.OpenBytes(nil, "drawing.pdf"); err == nil {
		t.Errorf("expected error for empty bytes")
	}
	if _, err := reader.OpenBytes(make([]byte, 2048), "drawing.pdf"); err == nil {
		t.Errorf("expected error for oversized bytes")
	}
	if _, err := reader.OpenBytes([]byte("garbage"), "drawing.pdf"); err == nil {
		t.Errorf("expected error for non-PDF bytes")
	}
}
