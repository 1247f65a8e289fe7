package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidator_ValidateFileInfo(t *testing.T) {
	validator := NewValidator(1024 * 1024) // 1MB limit

	tempDir := t.TempDir()

	validPath := filepath.Join(tempDir, "part.pdf")
	largePath := filepath.Join(tempDir, "assembly.pdf")
	emptyPath := filepath.Join(tempDir, "blank.pdf")
	nonPDFPath := filepath.Join(tempDir, "notes.txt")

	if err := os.WriteFile(validPath, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := os.WriteFile(largePath, make([]byte, 2*1024*1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := os.WriteFile(emptyPath, []byte{}, 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := os.WriteFile(nonPDFPath, []byte("notes"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{
			name:      "valid pdf within size limit",
			path:      validPath,
			expectErr: false,
		},
		{
			name:      "pdf over size limit",
			path:      largePath,
			expectErr: true,
		},
		{
			name:      "empty pdf",
			path:      emptyPath,
			expectErr: true,
		},
		{
			name:      "non-pdf extension",
			path:      nonPDFPath,
			expectErr: true,
		},
		{
			name:      "directory",
			path:      tempDir,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatalf("failed to stat test file: %v", err)
			}

			err = validator.ValidateFileInfo(tt.path, info)
			if tt.expectErr && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidator_ValidateFile_Errors(t *testing.T) {
	validator := NewValidator(1024 * 1024)

	tests := []struct {
		name string
		path string
	}{
		{
			name: "empty path",
			path: "",
		},
		{
			name: "non-existent file",
			path: "/non/existent/drawing.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validator.ValidateFile(tt.path); err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}
}

func TestValidator_ValidateFile_NotAPDF(t *testing.T) {
	validator := NewValidator(1024 * 1024)

	// Correct extension, garbage content
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := validator.ValidateFile(path); err == nil {
		t.Errorf("expected error for non-PDF content")
	}
}

func TestValidator_ValidateBytes(t *testing.T) {
	validator := NewValidator(1024)

	tests := []struct {
		name     string
		data     []byte
		filename string
	}{
		{
			name:     "empty data",
			data:     nil,
			filename: "drawing.pdf",
		},
		{
			name:     "wrong extension",
			data:     []byte("%PDF-1.4"),
			filename: "drawing.dwg",
		},
		{
			name:     "oversized data",
			data:     make([]byte, 2048),
			filename: "drawing.pdf",
		},
		{
			name:     "garbage content",
			data:     []byte("not a pdf"),
			filename: "drawing.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validator.ValidateBytes(tt.data, tt.filename); err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}
}

func TestValidator_IsValidPDF(t *testing.T) {
	validator := NewValidator(1024 * 1024)

	if validator.IsValidPDF("/non/existent/drawing.pdf") {
		t.Errorf("expected false for non-existent file")
	}
}
