package web

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/dimsheet/dimsheet/internal/config"
	"github.com/dimsheet/dimsheet/internal/extract"
	"github.com/dimsheet/dimsheet/internal/store"
)

//go:embed static
var staticFiles embed.FS

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	// Headroom over the drawing size limit for the rest of the form
	multipartOverhead = 1 << 20
)

// Server is the browser interface: the embedded upload page plus the JSON
// API
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *extract.Service
	history   *store.Store // nil when history is disabled
}

// NewServer creates the web server. history may be nil; extraction and
// export work without it.
func NewServer(cfg *config.Config, logger *slog.Logger, extractor *extract.Service, history *store.Store) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		extractor: extractor,
		history:   history,
	}
}

// Handler builds the routed handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/extract", s.handleExtract)
	mux.HandleFunc("/api/export", s.handleExportOnce)
	mux.HandleFunc("/api/extractions", s.handleExtractions)
	mux.HandleFunc("/api/extractions/", s.handleExtraction)
	mux.HandleFunc("/healthz", s.handleHealthz)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// Run serves until the context is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
