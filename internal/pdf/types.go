package pdf

// Line extraction strategies, in the order they are attempted
const (
	StrategyPlain = "plain"
	StrategyRows  = "rows"
	StrategyWords = "words"
)

// Content type classifications for a drawing
const (
	ContentTypeText    = "text"
	ContentTypeScanned = "scanned_images"
	ContentTypeMixed   = "mixed"
	ContentTypeEmpty   = "no_content"
)

// FileInfo represents information about a drawing PDF found on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// PageLines holds the text lines extracted from a single drawing page
type PageLines struct {
	Page  int      `json:"page"`
	Lines []string `json:"lines"`
}

// ContentInfo describes what kind of content a drawing carries
type ContentInfo struct {
	Type       string `json:"type"`
	HasImages  bool   `json:"has_images"`
	ImageCount int    `json:"image_count"`
}

// Metadata holds the drawing header information from the document
// information dictionary
type Metadata struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
}

// DirectoryStats summarizes the drawing PDFs in a directory
type DirectoryStats struct {
	Directory       string `json:"directory"`
	TotalFiles      int    `json:"total_files"`
	TotalSize       int64  `json:"total_size"`
	LargestFileName string `json:"largest_file_name,omitempty"`
	LargestFileSize int64  `json:"largest_file_size"`
	AverageFileSize int64  `json:"average_file_size"`
}

// Strategies returns the line extraction strategies in attempt order
func Strategies() []string {
	return []string{StrategyPlain, StrategyRows, StrategyWords}
}
