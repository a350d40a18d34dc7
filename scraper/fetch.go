package scraper

import (
	"bytes"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/exp/rand"
)

// Fetcher retrieves pages from the source site. Every fetch uses a fresh
// collector so visited-URL tracking never suppresses a retry.
type Fetcher struct {
	UserAgent string
	Timeout   time.Duration
}

func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{UserAgent: userAgent, Timeout: timeout}
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Linux; Android 13; Pixel 6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Mobile Safari/537.36",
}

func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

func (f *Fetcher) newCollector() *colly.Collector {
	ua := f.UserAgent
	if ua == "" {
		ua = RandomUserAgent()
	}

	collector := colly.NewCollector(colly.UserAgent(ua))
	collector.SetRequestTimeout(f.Timeout)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "es-ES,es;q=0.8,en;q=0.5")
		r.Headers.Set("Referer", "https://www.google.com/")
	})

	return collector
}

// GetBytes fetches a URL and returns the raw response body. Non-2xx
// responses and timeouts surface as errors.
func (f *Fetcher) GetBytes(url string) ([]byte, error) {
	var body []byte
	collector := f.newCollector()
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if body == nil {
		return nil, fmt.Errorf("fetching %s: empty response", url)
	}
	return body, nil
}

// GetDocument fetches a URL and parses it, returning both the document and
// the raw markup for strategies that work on unparsed HTML.
func (f *Fetcher) GetDocument(url string) (*goquery.Document, []byte, error) {
	body, err := f.GetBytes(url)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, body, nil
}
