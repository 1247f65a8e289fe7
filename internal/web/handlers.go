package web

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/export"
	"github.com/dimsheet/dimsheet/internal/extract"
	"github.com/dimsheet/dimsheet/internal/store"
)

// extractResponse is an extraction result with its history id when one was
// recorded
type extractResponse struct {
	ID int64 `json:"id,omitempty"`
	*extract.Result
}

// handleIndex serves the embedded upload page and its static assets
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := "static" + r.URL.Path
	if r.URL.Path == "/" {
		path = "static/index.html"
	}

	data, err := staticFiles.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// handleExtract accepts a drawing upload and responds with the extraction
// result, recording it in the history when the store is configured
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.readUpload(w, r)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	result, err := s.extractor.ExtractBytes(*req)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	resp := extractResponse{Result: result}
	if s.history != nil {
		id, err := s.history.SaveResult(result)
		if err != nil {
			// Extraction still succeeded; history is best effort
			s.logger.Error("failed to record extraction", "drawing", result.Drawing, "error", err)
		} else {
			resp.ID = id
		}
	}

	s.logger.Info("drawing extracted",
		"drawing", result.Drawing,
		"dimensions", result.Summary.Total,
		"strategy", result.Strategy)
	s.writeJSON(w, http.StatusOK, resp)
}

// handleExportOnce accepts a drawing upload and responds with the
// spreadsheet directly, no history involved
func (s *Server) handleExportOnce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.readUpload(w, r)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	result, err := s.extractor.ExtractBytes(*req)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	opts := export.Options{IncludePages: s.includePages(r)}
	format := r.FormValue("format")
	if format == "" {
		format = "xlsx"
	}

	s.writeExport(w, result.Drawing, result.Dimensions, format, opts)
}

// handleExtractions lists recent history records
func (s *Server) handleExtractions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.history == nil {
		http.Error(w, "extraction history is disabled", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	extractions, err := s.history.ListExtractions(limit)
	if err != nil {
		s.logger.Error("failed to list extractions", "error", err)
		http.Error(w, "failed to list extractions", http.StatusInternalServerError)
		return
	}
	if extractions == nil {
		extractions = []store.Extraction{}
	}

	s.writeJSON(w, http.StatusOK, extractions)
}

// handleExtraction routes /api/extractions/{id} and
// /api/extractions/{id}/export
func (s *Server) handleExtraction(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "extraction history is disabled", http.StatusNotFound)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/extractions/")
	idStr, tail, _ := strings.Cut(rest, "/")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid extraction id", http.StatusBadRequest)
		return
	}

	switch {
	case tail == "export":
		s.handleExtractionExport(w, r, id)

	case tail == "":
		switch r.Method {
		case http.MethodGet:
			record, err := s.history.GetExtraction(id)
			if err != nil {
				http.Error(w, "extraction not found", http.StatusNotFound)
				return
			}
			s.writeJSON(w, http.StatusOK, record)

		case http.MethodDelete:
			if err := s.history.DeleteExtraction(id); err != nil {
				http.Error(w, "extraction not found", http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}

	default:
		http.NotFound(w, r)
	}
}

// handleExtractionExport downloads a stored extraction as a spreadsheet,
// with optional parameter and type filters
func (s *Server) handleExtractionExport(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	record, err := s.history.GetExtraction(id)
	if err != nil {
		http.Error(w, "extraction not found", http.StatusNotFound)
		return
	}

	dims := extract.Filter(record.Dimensions,
		splitParam(r.URL.Query().Get("parameters")),
		splitParam(r.URL.Query().Get("types")))

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	opts := export.Options{IncludePages: s.includePages(r)}
	s.writeExport(w, record.Drawing, dims, format, opts)
}

// handleHealthz reports liveness and, when configured, store connectivity
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if s.history != nil {
		if err := s.history.Ping(); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["store"] = "ok"
		}
	}

	s.writeJSON(w, code, status)
}

// readUpload parses the multipart form and returns the extraction request
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*extract.ExtractBytesRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.extractor.MaxFileSize()+multipartOverhead)

	if err := r.ParseMultipartForm(s.extractor.MaxFileSize() + multipartOverhead); err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	file, header, err := r.FormFile("drawing")
	if err != nil {
		return nil, fmt.Errorf("missing 'drawing' field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &extract.ExtractBytesRequest{
		Data:             data,
		Name:             header.Filename,
		DefaultTolerance: r.FormValue("default_tolerance"),
	}, nil
}

// includePages reads the include_pages option, defaulting to the
// configured value
func (s *Server) includePages(r *http.Request) bool {
	v := r.FormValue("include_pages")
	if v == "" {
		v = r.URL.Query().Get("include_pages")
	}
	if v == "" {
		return s.cfg.IncludePageRefs
	}
	include, err := strconv.ParseBool(v)
	if err != nil {
		return s.cfg.IncludePageRefs
	}
	return include
}

// writeExport streams a spreadsheet or CSV download
func (s *Server) writeExport(w http.ResponseWriter, drawing string, dims []dimension.Dimension, format string, opts export.Options) {
	switch format {
	case "xlsx":
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(drawing, "xlsx")))
		if err := export.Write(w, dims, opts); err != nil {
			s.logger.Error("failed to write spreadsheet", "drawing", drawing, "error", err)
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(drawing, "csv")))
		if err := export.WriteCSV(w, dims, opts); err != nil {
			s.logger.Error("failed to write CSV", "drawing", drawing, "error", err)
		}

	default:
		http.Error(w, fmt.Sprintf("unsupported export format: %s", format), http.StatusBadRequest)
	}
}

// uploadError maps extraction failures to HTTP statuses
func (s *Server) uploadError(w http.ResponseWriter, err error) {
	msg := err.Error()
	code := http.StatusBadRequest

	switch {
	case strings.Contains(msg, "not a PDF"):
		code = http.StatusUnsupportedMediaType
	case strings.Contains(msg, "too large"):
		code = http.StatusRequestEntityTooLarge
	}

	s.logger.Warn("upload rejected", "error", err)
	http.Error(w, msg, code)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// splitParam splits a comma-separated query value, dropping empties
func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
