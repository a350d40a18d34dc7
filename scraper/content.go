package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kogaraashi-py/Foreign-Library/textutil"
)

var contentSelectors = []string{
	".entry-content",
	".chapter-content",
	"article .content",
	".post-content",
	`div[itemprop="articleBody"]`,
}

const noiseSelectors = "script, style, .ads, .social-share, nav, " +
	".sharedaddy, .jp-relatedposts, .wpcnt, " +
	".code-block, .adsbox, iframe, .adsbygoogle"

// minBlockLength filters out captions, separators and widget fragments.
const minBlockLength = 30

// ExtractChapterContent pulls the narrative text out of a chapter page.
// It returns the cleaned body, or "" when no content container matched or
// nothing narrative survived the filters.
func ExtractChapterContent(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}

		container.Find(noiseSelectors).Remove()

		var paragraphs []string
		container.Find("p, div").Each(func(_ int, block *goquery.Selection) {
			text := textutil.CollapseSpaces(block.Text())
			if len(text) > minBlockLength && !textutil.IsSpam(text) {
				paragraphs = append(paragraphs, text)
			}
		})

		if len(paragraphs) > 0 {
			return textutil.CleanContent(strings.Join(paragraphs, "\n\n"))
		}
	}
	return ""
}
