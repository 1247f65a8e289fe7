package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks drawing PDFs before extraction
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new drawing validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs full validation on a drawing file: filesystem
// checks, a parse check, and structural validation through pdfcpu
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(path, fileInfo); err != nil {
		return err
	}

	f, _, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	return deepValidate(file)
}

// ValidateBytes performs validation on an uploaded drawing
func (v *Validator) ValidateBytes(data []byte, name string) error {
	if len(data) == 0 {
		return fmt.Errorf("drawing is empty: %s", name)
	}

	if name != "" && !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", name)
	}

	if int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			len(data), v.maxFileSize)
	}

	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	return deepValidate(bytes.NewReader(data))
}

// ValidateFileInfo performs basic validation without opening the PDF
func (v *Validator) ValidateFileInfo(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid drawing PDF
func (v *Validator) IsValidPDF(path string) bool {
	return v.ValidateFile(path) == nil
}

// deepValidate runs relaxed structural validation through pdfcpu. CAD
// exporters bend the spec often enough that strict mode rejects working
// drawings.
func deepValidate(rs io.ReadSeeker) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF structure: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("drawing has no readable pages: %w", err)
	}

	return nil
}
