package scraper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kogaraashi-py/Foreign-Library/textutil"
)

var (
	chapterListSelectors = "ul.lcp_catlist a, .chapter-list a, .wp-manga-chapter a"

	reChapterURL   = regexp.MustCompile(`(?i)capitulo-?(\d+)`)
	reChapterTitle = regexp.MustCompile(`(?i)cap[íi]tulo\s*(\d+)`)
	reFirstNumber  = regexp.MustCompile(`(\d+)`)
)

// DiscoverChapters enumerates the chapter links of a novel index page,
// assigns each an ordinal, deduplicates by URL and sorts ascending. Entries
// whose ordinal cannot be parsed keep 0 and sort first; they signal an
// extraction problem rather than being dropped.
func DiscoverChapters(doc *goquery.Document, baseURL string) []ChapterLink {
	links := doc.Find(chapterListSelectors)
	if links.Length() == 0 {
		// No known container matched; scan every link on the page for the
		// chapter URL pattern instead.
		links = doc.Find("a").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			return ok && reChapterURL.MatchString(href)
		})
	}

	seen := make(map[string]bool)
	var chapters []ChapterLink

	links.Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(strings.ToLower(href), "capitulo") {
			return
		}

		url := href
		if !strings.HasPrefix(url, "http") {
			url = strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(url, "/")
		}
		if seen[url] {
			return
		}
		seen[url] = true

		title := textutil.CollapseSpaces(sel.Text())
		chapters = append(chapters, ChapterLink{
			URL:    url,
			Title:  title,
			Number: parseChapterNumber(url, title),
		})
	})

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})
	return chapters
}

// parseChapterNumber resolves an ordinal from the URL first, then the title
// text, then any number in the title; 0 means unresolvable.
func parseChapterNumber(url, title string) int {
	if m := reChapterURL.FindStringSubmatch(url); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := reChapterTitle.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := reFirstNumber.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}
