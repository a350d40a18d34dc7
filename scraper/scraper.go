package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MinChapterLength is the acceptance threshold for a scraped chapter body.
// Anything shorter is reported as a skip.
const MinChapterLength = 500

// Scraper drives metadata extraction, chapter discovery and per-chapter
// content extraction for one source site.
type Scraper struct {
	Fetcher *Fetcher
	BaseURL string
	Delay   time.Duration
}

func New(fetcher *Fetcher, baseURL string, delay time.Duration) *Scraper {
	if delay == 0 {
		delay = time.Second
	}
	return &Scraper{Fetcher: fetcher, BaseURL: baseURL, Delay: delay}
}

// IndexURL returns the novel index page locator for a slug.
func (s *Scraper) IndexURL(slug string) string {
	return fmt.Sprintf("%s/novela/%s/", strings.TrimSuffix(s.BaseURL, "/"), slug)
}

// Scrape downloads a novel's metadata and the chapters whose ordinals fall
// in [start, end] (end <= 0 means everything). Per-chapter failures are
// recorded as skips and never abort the run; cancelling ctx stops between
// chapters with the partial result intact.
func (s *Scraper) Scrape(ctx context.Context, slug string, start, end int) (*Result, error) {
	indexURL := s.IndexURL(slug)
	log.Printf("Scraping novel index: %s", indexURL)

	doc, raw, err := s.Fetcher.GetDocument(indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching novel index: %w", err)
	}

	novel := ExtractMetadata(doc, raw, s.BaseURL, indexURL)
	links := DiscoverChapters(doc, s.BaseURL)
	log.Printf("Novel %q by %q, %d chapters discovered", novel.Name, novel.Author, len(links))

	if end <= 0 {
		end = maxOrdinal(links)
	}

	result := &Result{Novel: novel}
	first := true
	for _, link := range links {
		if link.Number < start || link.Number > end {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !first {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.Delay):
			}
		}
		first = false

		content, err := s.scrapeChapter(link.URL)
		if err != nil {
			log.Printf("Chapter %d skipped: %v", link.Number, err)
			result.Skipped = append(result.Skipped, SkippedChapter{Number: link.Number, Reason: err.Error()})
			continue
		}
		if len(content) < MinChapterLength {
			log.Printf("Chapter %d skipped: content too short (%d chars)", link.Number, len(content))
			result.Skipped = append(result.Skipped, SkippedChapter{
				Number: link.Number,
				Reason: fmt.Sprintf("content too short (%d chars)", len(content)),
			})
			continue
		}

		sourceURL := link.URL
		result.Novel.Chapters = append(result.Novel.Chapters, ScrapedChapter{
			Title:       link.Title,
			Content:     content,
			OrderNumber: link.Number,
			SourceURL:   &sourceURL,
		})
	}

	log.Printf("Scrape finished: %d chapters downloaded, %d skipped", len(result.Novel.Chapters), len(result.Skipped))
	return result, nil
}

func (s *Scraper) scrapeChapter(url string) (string, error) {
	doc, _, err := s.Fetcher.GetDocument(url)
	if err != nil {
		return "", err
	}

	content := ExtractChapterContent(doc)
	if content == "" {
		return "", fmt.Errorf("no content container matched")
	}
	return content, nil
}

// DownloadCover fetches the cover resolved during metadata extraction and
// stores it in dir, recording the local path on the result.
func (s *Scraper) DownloadCover(result *Result, dir string) error {
	if result.Novel.CoverURL == "" {
		return nil
	}

	body, err := s.Fetcher.GetBytes(result.Novel.CoverURL)
	if err != nil {
		return fmt.Errorf("downloading cover: %w", err)
	}

	ext := path.Ext(result.Novel.CoverURL)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	coverPath := filepath.Join(dir, "cover"+ext)
	if err := os.WriteFile(coverPath, body, 0644); err != nil {
		return fmt.Errorf("saving cover: %w", err)
	}

	result.Novel.ImagePath = &coverPath
	return nil
}

// WriteJSON serializes the run's novel as an import submission at
// {dir}/{slug}.json.
func (r *Result) WriteJSON(dir, slug string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	novel := r.Novel
	if novel.AlternativeNames == nil {
		novel.AlternativeNames = []string{}
	}
	if novel.Genres == nil {
		novel.Genres = []string{}
	}
	if novel.Chapters == nil {
		novel.Chapters = []ScrapedChapter{}
	}

	data, err := json.MarshalIndent(novel, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing scrape result: %w", err)
	}

	jsonPath := filepath.Join(dir, slug+".json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	return jsonPath, nil
}

func maxOrdinal(links []ChapterLink) int {
	max := 0
	for _, l := range links {
		if l.Number > max {
			max = l.Number
		}
	}
	return max
}
