package pdf

import (
	"strings"
)

// ReadMetadata extracts the drawing header information from the document
// information dictionary. Missing or malformed entries are left empty.
func (r *Reader) ReadMetadata(doc *Document) (meta Metadata) {
	defer func() {
		// The info dictionary of hand-edited drawings can hold values the
		// library chokes on
		_ = recover()
	}()

	trailer := doc.reader.Trailer()
	if trailer.IsNull() {
		return meta
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return meta
	}

	if title := info.Key("Title"); !title.IsNull() {
		meta.Title = strings.TrimSpace(title.String())
	}
	if author := info.Key("Author"); !author.IsNull() {
		meta.Author = strings.TrimSpace(author.String())
	}
	if subject := info.Key("Subject"); !subject.IsNull() {
		meta.Subject = strings.TrimSpace(subject.String())
	}
	if producer := info.Key("Producer"); !producer.IsNull() {
		meta.Producer = strings.TrimSpace(producer.String())
	}
	if creationDate := info.Key("CreationDate"); !creationDate.IsNull() {
		meta.CreationDate = strings.TrimSpace(creationDate.String())
	}

	return meta
}
