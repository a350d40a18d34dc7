package scraper

import "github.com/Kogaraashi-py/Foreign-Library/models"

// ScrapedChapter is one downloaded chapter, shaped like the import wire
// format so a scrape result can be submitted as-is.
type ScrapedChapter struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	OrderNumber int     `json:"order_number"`
	SourceURL   *string `json:"source_url"`
}

// ScrapedNovel is the transient result of one scrape run.
type ScrapedNovel struct {
	Name             string             `json:"name"`
	Author           string             `json:"author"`
	Description      string             `json:"description"`
	Rating           *float64           `json:"rating"`
	Status           models.NovelStatus `json:"status"`
	SourceURL        string             `json:"source_url"`
	ImagePath        *string            `json:"image_path"`
	AlternativeNames []string           `json:"alternative_names"`
	Genres           []string           `json:"genres"`
	Chapters         []ScrapedChapter   `json:"chapters"`

	// CoverURL is the remote cover locator; it is resolved during metadata
	// extraction and downloaded separately, never serialized.
	CoverURL string `json:"-"`
}

// ChapterLink is one entry of a novel's chapter index.
type ChapterLink struct {
	URL    string
	Title  string
	Number int
}

// SkippedChapter records a chapter that produced no usable content.
type SkippedChapter struct {
	Number int
	Reason string
}

// Result aggregates a scrape run: the populated novel plus per-run
// statistics. Skips are reported, not silently dropped.
type Result struct {
	Novel   ScrapedNovel
	Skipped []SkippedChapter
}
