package extract

import (
	"fmt"

	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/pdf"
)

// Service orchestrates drawing reading and callout extraction
type Service struct {
	maxFileSize      int64
	defaultTolerance string
	reader           *pdf.Reader
	validator        *pdf.Validator
	scanner          *pdf.Scanner
}

// NewService creates a new extraction service
func NewService(maxFileSize int64, defaultTolerance string) *Service {
	if defaultTolerance == "" {
		defaultTolerance = dimension.DefaultTolerance
	}
	return &Service{
		maxFileSize:      maxFileSize,
		defaultTolerance: defaultTolerance,
		reader:           pdf.NewReader(maxFileSize),
		validator:        pdf.NewValidator(maxFileSize),
		scanner:          pdf.NewScanner(maxFileSize),
	}
}

// ExtractFile extracts dimensional callouts from a drawing on disk
func (s *Service) ExtractFile(req ExtractFileRequest) (*Result, error) {
	if err := s.validator.ValidateFile(req.Path); err != nil {
		return nil, fmt.Errorf("drawing validation failed: %w", err)
	}

	doc, err := s.reader.OpenFile(req.Path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return s.extract(doc, req.DefaultTolerance), nil
}

// ExtractBytes extracts dimensional callouts from an uploaded drawing
func (s *Service) ExtractBytes(req ExtractBytesRequest) (*Result, error) {
	if err := s.validator.ValidateBytes(req.Data, req.Name); err != nil {
		return nil, fmt.Errorf("drawing validation failed: %w", err)
	}

	doc, err := s.reader.OpenBytes(req.Data, req.Name)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return s.extract(doc, req.DefaultTolerance), nil
}

// extract runs the strategy fallback over an open drawing. The first
// strategy that yields any callouts wins for the whole document.
func (s *Service) extract(doc *pdf.Document, tolerance string) *Result {
	if tolerance == "" {
		tolerance = s.defaultTolerance
	}

	result := &Result{
		Drawing:  doc.Name,
		Size:     doc.Size,
		Pages:    doc.NumPages(),
		Metadata: s.reader.ReadMetadata(doc),
	}

	content := s.reader.AnalyzeContent(doc, s.reader.PlainText(doc))
	result.ContentType = content.Type

	for _, strategy := range pdf.Strategies() {
		pages, err := s.reader.Lines(doc, strategy)
		if err != nil {
			continue
		}

		if dims := ScanPages(pages, tolerance); len(dims) > 0 {
			result.Strategy = strategy
			result.Dimensions = dims
			break
		}
	}

	if result.Dimensions == nil {
		result.Dimensions = []dimension.Dimension{}
		result.Warnings = emptyResultWarnings(content)
	}

	result.Summary = buildSummary(result.Dimensions)
	return result
}

// MaxFileSize returns the drawing size limit
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// DefaultTolerance returns the configured fallback tolerance
func (s *Service) DefaultTolerance() string {
	return s.defaultTolerance
}

// ValidateFile checks a drawing on disk without extracting it
func (s *Service) ValidateFile(path string) error {
	return s.validator.ValidateFile(path)
}

// FindDrawings lists drawing PDFs under a directory
func (s *Service) FindDrawings(directory string) ([]pdf.FileInfo, error) {
	return s.scanner.FindDrawings(directory)
}

// DirectoryStats summarizes the drawing PDFs under a directory
func (s *Service) DirectoryStats(directory string) (*pdf.DirectoryStats, error) {
	return s.scanner.Stats(directory)
}

// emptyResultWarnings explains a callout-free extraction to the user
func emptyResultWarnings(content pdf.ContentInfo) []string {
	warnings := []string{
		"No dimensional callouts found in the drawing",
	}

	if content.Type == pdf.ContentTypeScanned {
		warnings = append(warnings,
			"The drawing appears to be a scanned image; text extraction requires a text-searchable PDF")
		return warnings
	}

	warnings = append(warnings,
		"Ensure dimensions use numbered balloon callouts (e.g. \"1 25.4 ±0.1\")",
		"Ensure dimensions follow standard formats (nominal value with optional tolerance)",
		"Ensure the PDF is text-searchable, not a scanned image",
	)
	return warnings
}
