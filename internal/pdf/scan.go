package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner discovers drawing PDFs under the configured drawings directory
type Scanner struct {
	maxFileSize int64
	validator   *Validator
}

// NewScanner creates a new drawings directory scanner
func NewScanner(maxFileSize int64) *Scanner {
	return &Scanner{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// FindDrawings returns every drawing PDF under the directory that passes
// basic validation. Files that fail are skipped, not reported.
func (s *Scanner) FindDrawings(directory string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var drawings []FileInfo
	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Continue despite unreadable entries
		}

		if info.IsDir() {
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			return nil
		}

		if s.validator.ValidateFileInfo(path, info) != nil {
			return nil
		}

		drawings = append(drawings, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return drawings, nil
}

// Stats summarizes the drawing PDFs under the directory
func (s *Scanner) Stats(directory string) (*DirectoryStats, error) {
	drawings, err := s.FindDrawings(directory)
	if err != nil {
		return nil, err
	}

	stats := &DirectoryStats{
		Directory:  directory,
		TotalFiles: len(drawings),
	}

	for _, d := range drawings {
		stats.TotalSize += d.Size
		if d.Size > stats.LargestFileSize {
			stats.LargestFileSize = d.Size
			stats.LargestFileName = d.Name
		}
	}

	if stats.TotalFiles > 0 {
		stats.AverageFileSize = stats.TotalSize / int64(stats.TotalFiles)
	}

	return stats, nil
}
