package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// Minimum text length before a drawing counts as carrying real text
const minMeaningfulTextLength = 50

// AnalyzeContent determines what kind of content the drawing carries. A
// scanned drawing yields images but no extractable text, which drives the
// OCR warning upstream.
func (r *Reader) AnalyzeContent(doc *Document, text string) ContentInfo {
	hasImages, imageCount := r.detectImages(doc)
	cleanText := strings.TrimSpace(text)

	info := ContentInfo{
		HasImages:  hasImages,
		ImageCount: imageCount,
	}

	if len(cleanText) < minMeaningfulTextLength {
		if hasImages {
			info.Type = ContentTypeScanned
		} else {
			info.Type = ContentTypeEmpty
		}
		return info
	}

	if hasImages {
		info.Type = ContentTypeMixed
	} else {
		info.Type = ContentTypeText
	}
	return info
}

// detectImages scans the drawing for image objects
func (r *Reader) detectImages(doc *Document) (bool, int) {
	imageCount := 0

	for pageNum := 1; pageNum <= doc.reader.NumPage(); pageNum++ {
		imageCount += countImagesOnPage(doc.reader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts image XObjects in a page's resources
func countImagesOnPage(pdfReader *pdf.Reader, pageNum int) int {
	defer func() {
		// Malformed resource dictionaries panic inside the library
		_ = recover()
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		imageCount++
	}

	return imageCount
}
