package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// Document is an open drawing PDF ready for extraction
type Document struct {
	Name   string
	Size   int64
	reader *pdf.Reader
	data   []byte
	closer io.Closer
}

// Reader opens drawing PDFs from disk or from uploaded bytes
type Reader struct {
	maxFileSize int64
}

// NewReader creates a new drawing reader with the specified size limit
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
	}
}

// OpenFile opens a drawing PDF from a file path
func (r *Reader) OpenFile(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if fileInfo.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &Document{
		Name:   filepath.Base(path),
		Size:   fileInfo.Size(),
		reader: pdfReader,
		closer: f,
	}, nil
}

// OpenBytes opens a drawing PDF from uploaded bytes. The name is kept for
// result and export labeling only.
func (r *Reader) OpenBytes(data []byte, name string) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing is empty")
	}

	if int64(len(data)) > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			len(data), r.maxFileSize)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	if name == "" {
		name = "drawing.pdf"
	}

	return &Document{
		Name:   name,
		Size:   int64(len(data)),
		reader: pdfReader,
		data:   data,
	}, nil
}

// NumPages returns the page count of the drawing
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Bytes returns the raw document bytes when the document was opened from
// memory, nil otherwise
func (d *Document) Bytes() []byte {
	return d.data
}

// Close releases the underlying file handle, if any
func (d *Document) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
