package extract

import (
	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/pdf"
)

// ExtractFileRequest asks for extraction of a drawing on disk
type ExtractFileRequest struct {
	Path             string `json:"path"`
	DefaultTolerance string `json:"default_tolerance,omitempty"`
}

// ExtractBytesRequest asks for extraction of an uploaded drawing
type ExtractBytesRequest struct {
	Data             []byte `json:"-"`
	Name             string `json:"name"`
	DefaultTolerance string `json:"default_tolerance,omitempty"`
}

// ParameterCount is one row of the parameter distribution
type ParameterCount struct {
	Parameter string `json:"parameter"`
	Count     int    `json:"count"`
}

// Summary aggregates an extraction for the metrics panel and the Summary
// sheet
type Summary struct {
	Total             int              `json:"total"`
	CriticalCount     int              `json:"critical_count"`
	UniqueParameters  int              `json:"unique_parameters"`
	PagesWithCallouts int              `json:"pages_with_callouts"`
	ParameterCounts   []ParameterCount `json:"parameter_counts"`
}

// Result is a completed extraction of one drawing
type Result struct {
	Drawing     string                `json:"drawing"`
	Size        int64                 `json:"size"`
	Pages       int                   `json:"pages"`
	Strategy    string                `json:"strategy,omitempty"`
	ContentType string                `json:"content_type"`
	Metadata    pdf.Metadata          `json:"metadata,omitempty"`
	Dimensions  []dimension.Dimension `json:"dimensions"`
	Summary     Summary               `json:"summary"`
	Warnings    []string              `json:"warnings,omitempty"`
}
