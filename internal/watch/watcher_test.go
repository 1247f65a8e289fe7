package watch

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimsheet/dimsheet/internal/config"
	"github.com/dimsheet/dimsheet/internal/extract"
	"github.com/dimsheet/dimsheet/internal/pdf/pdftest"
)

func testWatcher(t *testing.T) *Watcher {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DrawingsDirectory = t.TempDir()
	cfg.ExportDirectory = t.TempDir()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(cfg, logger, extract.NewService(1024*1024, "±0.10"), nil)
	require.NoError(t, err)
	t.Cleanup(w.stop)
	return w
}

func TestWatcher_ShouldProcess(t *testing.T) {
	w := testWatcher(t)
	dir := w.cfg.DrawingsDirectory

	pdfPath := filepath.Join(dir, "bracket.pdf")
	hiddenPath := filepath.Join(dir, ".bracket.pdf")
	txtPath := filepath.Join(dir, "notes.txt")

	for _, path := range []string{pdfPath, hiddenPath, txtPath} {
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	}

	assert.True(t, w.shouldProcess(pdfPath))
	assert.False(t, w.shouldProcess(hiddenPath), "hidden files are skipped")
	assert.False(t, w.shouldProcess(txtPath), "non-PDFs are skipped")
	assert.False(t, w.shouldProcess(dir), "directories are skipped")
	assert.False(t, w.shouldProcess(filepath.Join(dir, "gone.pdf")), "missing files are skipped")
}

func TestWatcher_ProcessSkipsUnchangedFile(t *testing.T) {
	w := testWatcher(t)

	path := filepath.Join(w.cfg.DrawingsDirectory, "bracket.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)

	// Mark as processed at the current modtime; process must be a no-op
	w.mu.Lock()
	w.processed[path] = info.ModTime()
	w.mu.Unlock()

	w.process(path)

	entries, err := os.ReadDir(w.cfg.ExportDirectory)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWatcher_DebounceCoalescesRapidWrites(t *testing.T) {
	w := testWatcher(t)

	path := pdftest.WriteDrawing(t, w.cfg.DrawingsDirectory, "bracket.pdf",
		"BRACKET ASSY", "1 25.4 ±0.1", "2 R5")

	// A burst of events for one file collapses into a single pending timer
	w.debounceFile(path)
	w.debounceFile(path)
	w.debounceFile(path)

	w.mu.Lock()
	pending := len(w.debounce)
	w.mu.Unlock()
	assert.Equal(t, 1, pending)

	// Once the file has been quiet for the debounce window it is processed
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		_, done := w.processed[path]
		return done
	}, 5*time.Second, 50*time.Millisecond)

	entries, err := os.ReadDir(w.cfg.ExportDirectory)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "extracted_dimensions_bracket.xlsx", entries[0].Name())
}

func TestWatcher_ProcessRejectsInvalidDrawing(t *testing.T) {
	w := testWatcher(t)

	// Valid extension, garbage content: validation rejects it and nothing
	// is exported
	path := filepath.Join(w.cfg.DrawingsDirectory, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	w.process(path)

	entries, err := os.ReadDir(w.cfg.ExportDirectory)
	require.NoError(t, err)
	assert.Empty(t, entries)

	w.mu.Lock()
	_, marked := w.processed[path]
	w.mu.Unlock()
	assert.False(t, marked, "failed files are retried on the next event")
}
