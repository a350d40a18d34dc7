package scraper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kogaraashi-py/Foreign-Library/models"
	"github.com/Kogaraashi-py/Foreign-Library/textutil"
)

// UnknownAuthor is the sentinel used when no plausible author is found.
const UnknownAuthor = "Desconocido"

// UnknownTitle is the sentinel used when no heading yields a title.
const UnknownTitle = "Título Desconocido"

var (
	reAuthorLine = regexp.MustCompile(`(?i)Autor:\s*([^\n]+?)(?:\s*Traductor:|\s*Plan de publicación:|\s*Estado:|\s*\n|\s*$)`)
	reGenreSplit = regexp.MustCompile(`[,.]`)
	reGenreLine  = regexp.MustCompile(`(?i)Género:\s*(.+?)(?:\n|$)`)
	reStatusLine = regexp.MustCompile(`(?i)Estado:\s*(.+?)(?:\n|Tipo:)`)
	reAverage    = regexp.MustCompile(`(?i)Average:\s*(\d+\.?\d*)`)
	reNumber     = regexp.MustCompile(`(\d+\.?\d*)`)

	reEnglishTitle = regexp.MustCompile(`(?m)^([A-Z][A-Za-z\s]+?)-novela`)
	reAcronym      = regexp.MustCompile(`([A-Z]{3,})\s*–`)

	reRatingClass = regexp.MustCompile(`(?i)rating|score`)

	// Label trailers that bleed into a textual description capture.
	descriptionTrailers = []*regexp.Regexp{
		regexp.MustCompile(`(?is)Estado:.*$`),
		regexp.MustCompile(`(?is)Género:.*$`),
		regexp.MustCompile(`(?is)Autor:.*$`),
		regexp.MustCompile(`(?is)Traductor:.*$`),
		regexp.MustCompile(`(?is)Tipo:.*$`),
		regexp.MustCompile(`(?is)Original:.*$`),
		regexp.MustCompile(`(?is)Plan de publicación:.*$`),
	}

	descriptionNoise = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Sorry,?\s+you\s+have\s+Javascript\s+Disabled!?`),
		regexp.MustCompile(`(?i)To\s+see\s+this\s+page\s+as\s+it\s+is\s+meant\s+to\s+appear,?\s+please\s+enable\s+your\s+Javascript!?`),
		regexp.MustCompile(`(?i)Saltar\s+al\s+contenido`),
		regexp.MustCompile(`(?i)Menú`),
		regexp.MustCompile(`(?i)Novelas\s+Chinas`),
		regexp.MustCompile(`(?i)Novelas\s+Coreanas`),
		regexp.MustCompile(`(?i)Novelas\s+Japonesas`),
		regexp.MustCompile(`(?i)Novelas\s+\+18`),
		regexp.MustCompile(`(?i)Reclutamiento(\s+y\s+Otros)?`),
		regexp.MustCompile(`(?i)CONTACTO`),
		regexp.MustCompile(`(?is)Click\s+to\s+rate.*?\[Total:.*?Average:.*?\]`),
		regexp.MustCompile(`(?is)\[Total:.*?Average:.*?\]`),
	}

	coverSelectors = []string{
		".elementor-widget-image img",
		".featured-image img",
		".post-thumbnail img",
		"img.summary_image",
		"img.novel-cover",
		"img.wp-post-image",
		`img[itemprop="image"]`,
		".entry-header img",
		".novel-cover img",
	}

	coverAttrs = []string{"data-lazy-src", "data-src", "src", "data-original"}

	coverRawPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta\s+property=["']og:image["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<img[^>]+class=["'](?:summary_image|novel-cover|wp-post-image|featured-image)["'][^>]+(?:data-lazy-src|data-src|src)=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<img[^>]+(?:data-lazy-src|data-src|src)=["']([^"']+)["'][^>]+class=["'](?:summary_image|novel-cover|wp-post-image|featured-image)["']`),
	}

	titleSelectors = []string{
		"h1.entry-title",
		"h1.novel-title",
		".post-title h1",
		"header h1",
	}
)

// ExtractMetadata runs the ranked per-field strategies against a novel index
// page. Fields that cannot be resolved degrade to their documented defaults;
// nothing here fails the scrape.
func ExtractMetadata(doc *goquery.Document, rawHTML []byte, baseURL, sourceURL string) ScrapedNovel {
	raw := string(rawHTML)
	flat := flattenedText(doc)

	novel := ScrapedNovel{
		Name:      extractTitle(doc),
		SourceURL: sourceURL,
		Status:    extractStatus(flat),
		Genres:    extractGenres(flat),
	}
	novel.Author = extractAuthor(flat)
	novel.Description = extractDescription(flat, novel.Name)
	novel.Rating = extractRating(doc, raw)
	novel.CoverURL = extractCoverURL(doc, raw, baseURL)
	novel.AlternativeNames = extractAlternativeNames(flat, novel.Name)

	return novel
}

// flattenedText returns the page text with navigation chrome removed, the
// input for every labeled-line strategy.
func flattenedText(doc *goquery.Document) string {
	clone := goquery.CloneDocument(doc)
	clone.Find("nav, header, footer, .menu, .navigation, .skip-link, noscript, script, style").Remove()
	return clone.Text()
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		if t := textutil.CollapseSpaces(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	if t := textutil.CollapseSpaces(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return UnknownTitle
}

func extractAuthor(flat string) string {
	m := reAuthorLine.FindStringSubmatch(flat)
	if m == nil {
		return UnknownAuthor
	}

	author := textutil.CollapseSpaces(m[1])
	lower := strings.ToLower(author)
	switch {
	case author == "",
		lower == "desconocido",
		lower == "unknown",
		strings.Contains(lower, "traductor"),
		strings.Contains(lower, "plan de publicación"),
		utf8.RuneCountInString(author) >= 100:
		return UnknownAuthor
	}
	return author
}

func extractDescription(flat, title string) string {
	text := flat
	if title != "" && title != UnknownTitle {
		if idx := strings.Index(text, title); idx >= 0 {
			text = text[idx+len(title):]
		}
	}
	if idx := strings.Index(text, "Estado:"); idx >= 0 {
		text = text[:idx]
	}

	for _, re := range descriptionNoise {
		text = re.ReplaceAllString(text, "")
	}
	for _, re := range descriptionTrailers {
		text = re.ReplaceAllString(text, "")
	}
	text = reEnglishTitle.ReplaceAllString(text, "")
	if title != "" {
		text = strings.ReplaceAll(text, title, "")
	}

	text = textutil.CollapseSpaces(text)

	// A short remainder is navigation residue, not a synopsis. Lengths are
	// counted in characters, not bytes; the source text is Spanish.
	if utf8.RuneCountInString(text) <= 50 {
		return ""
	}
	if runes := []rune(text); len(runes) > 2000 {
		text = string(runes[:2000])
	}
	return text
}

func extractStatus(flat string) models.NovelStatus {
	m := reStatusLine.FindStringSubmatch(flat)
	if m == nil {
		return models.StatusOngoing
	}

	status := strings.ToLower(m[1])
	switch {
	case strings.Contains(status, "traducci"):
		return models.StatusOngoing
	case strings.Contains(status, "completado"),
		strings.Contains(status, "finalizado"),
		strings.Contains(status, "completed"):
		return models.StatusCompleted
	case strings.Contains(status, "pausa"),
		strings.Contains(status, "hiatus"):
		return models.StatusHiatus
	case strings.Contains(status, "abandonad"),
		strings.Contains(status, "dropped"):
		return models.StatusDropped
	}
	return models.StatusOngoing
}

func extractGenres(flat string) []string {
	m := reGenreLine.FindStringSubmatch(flat)
	if m == nil {
		return nil
	}

	var genres []string
	for _, g := range reGenreSplit.Split(m[1], -1) {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			genres = append(genres, g)
		}
		if len(genres) == 10 {
			break
		}
	}
	return genres
}

func extractRating(doc *goquery.Document, raw string) *float64 {
	// The rating widget renders its average into the raw markup before any
	// class-based element, so the text marker wins.
	if m := reAverage.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clampRating(v)
		}
	}

	var found *float64
	doc.Find("span, div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !reRatingClass.MatchString(class) {
			return true
		}
		if m := reNumber.FindStringSubmatch(sel.Text()); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				found = clampRating(v)
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}

	for _, attrSel := range []string{"[data-rating]", `[itemprop="ratingValue"]`} {
		sel := doc.Find(attrSel).First()
		if sel.Length() == 0 {
			continue
		}
		v, ok := sel.Attr("data-rating")
		if !ok {
			v, _ = sel.Attr("content")
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return clampRating(parsed)
		}
	}
	return nil
}

func clampRating(v float64) *float64 {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return &v
}

func extractCoverURL(doc *goquery.Document, raw, baseURL string) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if src := acceptCoverSrc(content, baseURL); src != "" {
			return src
		}
	}

	for _, sel := range coverSelectors {
		img := doc.Find(sel).First()
		if img.Length() == 0 {
			continue
		}
		for _, attr := range coverAttrs {
			if v, ok := img.Attr(attr); ok {
				if src := acceptCoverSrc(v, baseURL); src != "" {
					return src
				}
			}
		}
	}

	for _, re := range coverRawPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			if src := acceptCoverSrc(m[1], baseURL); src != "" {
				return src
			}
		}
	}
	return ""
}

// acceptCoverSrc rejects placeholder and lazy-loading sentinels and
// normalizes protocol-relative and root-relative locators.
func acceptCoverSrc(src, baseURL string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	for _, sentinel := range []string{"data:image", "placeholder", "loading", "lazy"} {
		if strings.Contains(src, sentinel) {
			return ""
		}
	}
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return strings.TrimSuffix(baseURL, "/") + src
	}
	return src
}

func extractAlternativeNames(flat, name string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		n = strings.TrimSpace(n)
		if n == "" || n == name || seen[n] || len(names) == 5 {
			return
		}
		seen[n] = true
		names = append(names, n)
	}

	if m := reEnglishTitle.FindStringSubmatch(flat); m != nil {
		add(m[1])
	}

	// The translator tags chapter titles with the novel's acronym; the most
	// frequent one is effectively another alternate name.
	counts := make(map[string]int)
	for _, m := range reAcronym.FindAllStringSubmatch(flat, -1) {
		counts[m[1]]++
	}
	if len(counts) > 0 {
		acronyms := make([]string, 0, len(counts))
		for a := range counts {
			acronyms = append(acronyms, a)
		}
		sort.Slice(acronyms, func(i, j int) bool {
			if counts[acronyms[i]] != counts[acronyms[j]] {
				return counts[acronyms[i]] > counts[acronyms[j]]
			}
			return acronyms[i] < acronyms[j]
		})
		add(acronyms[0])
	}

	return names
}
