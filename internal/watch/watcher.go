package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dimsheet/dimsheet/internal/config"
	"github.com/dimsheet/dimsheet/internal/export"
	"github.com/dimsheet/dimsheet/internal/extract"
	"github.com/dimsheet/dimsheet/internal/store"
)

// Events settle for this long before a drawing is processed, absorbing
// partial writes from slow copies
const debounceDelay = 500 * time.Millisecond

// Watcher processes drawing PDFs dropped into the drawings directory:
// each stable file is extracted, recorded, and exported as a spreadsheet
// into the export directory.
type Watcher struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *extract.Service
	history   *store.Store // nil when history is disabled
	watcher   *fsnotify.Watcher

	mu        sync.Mutex
	debounce  map[string]*time.Timer
	processed map[string]time.Time // path -> modtime of the last run
}

// New creates a watcher over the configured drawings directory
func New(cfg *config.Config, logger *slog.Logger, extractor *extract.Service, history *store.Store) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		cfg:       cfg,
		logger:    logger,
		extractor: extractor,
		history:   history,
		watcher:   fsWatcher,
		debounce:  make(map[string]*time.Timer),
		processed: make(map[string]time.Time),
	}, nil
}

// Run sweeps the drawings directory once, then watches it until the
// context is canceled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	if err := w.watcher.Add(w.cfg.DrawingsDirectory); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.cfg.DrawingsDirectory, err)
	}
	w.logger.Info("watching drawings directory", "dir", w.cfg.DrawingsDirectory)

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.shouldProcess(event.Name) {
				continue
			}
			w.debounceFile(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// sweep processes drawings already present at startup
func (w *Watcher) sweep() {
	drawings, err := w.extractor.FindDrawings(w.cfg.DrawingsDirectory)
	if err != nil {
		w.logger.Error("startup sweep failed", "error", err)
		return
	}

	for _, drawing := range drawings {
		w.process(drawing.Path)
	}
}

// shouldProcess filters out directories, hidden files, and non-PDFs
func (w *Watcher) shouldProcess(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// debounceFile delays processing until the file has been quiet for the
// debounce window
func (w *Watcher) debounceFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()

		w.process(path)
	})
}

// process extracts one drawing and writes its spreadsheet. Files already
// processed at the same modtime are skipped.
func (w *Watcher) process(path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Warn("drawing disappeared before processing", "path", path)
		return
	}

	w.mu.Lock()
	if last, ok := w.processed[path]; ok && last.Equal(info.ModTime()) {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	if err := w.extractor.ValidateFile(path); err != nil {
		w.logger.Warn("skipping invalid drawing", "path", path, "error", err)
		return
	}

	result, err := w.extractor.ExtractFile(extract.ExtractFileRequest{
		Path:             path,
		DefaultTolerance: w.cfg.DefaultTolerance,
	})
	if err != nil {
		w.logger.Error("extraction failed", "path", path, "error", err)
		return
	}

	if w.history != nil {
		if _, err := w.history.SaveResult(result); err != nil {
			w.logger.Error("failed to record extraction", "path", path, "error", err)
		}
	}

	if err := w.export(result); err != nil {
		w.logger.Error("export failed", "path", path, "error", err)
		return
	}

	w.mu.Lock()
	w.processed[path] = info.ModTime()
	w.mu.Unlock()

	w.logger.Info("drawing processed",
		"drawing", result.Drawing,
		"dimensions", result.Summary.Total,
		"strategy", result.Strategy)
}

// export writes the spreadsheet for a result into the export directory
func (w *Watcher) export(result *extract.Result) error {
	name := export.Filename(result.Drawing, "xlsx")
	target := filepath.Join(w.cfg.ExportDirectory, name)

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer f.Close()

	opts := export.Options{IncludePages: w.cfg.IncludePageRefs}
	if err := export.Write(f, result.Dimensions, opts); err != nil {
		return err
	}

	w.logger.Info("spreadsheet written", "path", target)
	return nil
}

// stop cancels pending debounce timers and closes the watcher
func (w *Watcher) stop() {
	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	w.debounce = make(map[string]*time.Timer)
	w.mu.Unlock()

	_ = w.watcher.Close()
}
