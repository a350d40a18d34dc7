package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverChaptersSortsAndDedupes(t *testing.T) {
	page := `<html><body>
<ul class="lcp_catlist">
<li><a href="/novela-capitulo-3/">Capítulo 3</a></li>
<li><a href="https://novelasligera.com/novela-capitulo-1/">Capítulo 1</a></li>
<li><a href="/novela-capitulo-2/">Capítulo 2</a></li>
<li><a href="/novela-capitulo-2/">Capítulo 2 (repetido)</a></li>
<li><a href="/otra-pagina/">Sin ordinal</a></li>
</ul>
</body></html>`
	doc, _ := parsePage(t, page)

	chapters := DiscoverChapters(doc, "https://novelasligera.com")

	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)
	assert.Equal(t, 3, chapters[2].Number)
	assert.Equal(t, "https://novelasligera.com/novela-capitulo-1/", chapters[0].URL)
	assert.Equal(t, "https://novelasligera.com/novela-capitulo-2/", chapters[1].URL)
	assert.Equal(t, "Capítulo 3", chapters[2].Title)
}

func TestDiscoverChaptersFallbackScan(t *testing.T) {
	// No known list container; the page-wide scan has to find the links.
	page := `<html><body>
<div class="random-widget">
<a href="/novela-capitulo-2/">Capítulo 2</a>
<a href="/novela-capitulo-1/">Capítulo 1</a>
<a href="/about/">Acerca de</a>
</div>
</body></html>`
	doc, _ := parsePage(t, page)

	chapters := DiscoverChapters(doc, "https://novelasligera.com")

	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)
}

func TestDiscoverChaptersEmpty(t *testing.T) {
	doc, _ := parsePage(t, `<html><body><p>sin enlaces</p></body></html>`)
	assert.Empty(t, DiscoverChapters(doc, "https://novelasligera.com"))
}

func TestParseChapterNumber(t *testing.T) {
	tests := []struct {
		url   string
		title string
		want  int
	}{
		{"https://x.com/novela-capitulo-12/", "Capítulo 12", 12},
		{"https://x.com/novela-capitulo12/", "", 12},
		{"https://x.com/novela-extra/", "Capítulo 7", 7},
		{"https://x.com/novela-capitulo-x/", "Extra 99", 99},
		{"https://x.com/novela-capitulo-x/", "sin numero", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseChapterNumber(tt.url, tt.title), "url=%q title=%q", tt.url, tt.title)
	}
}
