package textutil

import (
	"regexp"
	"strings"
)

var (
	reManyNewlines = regexp.MustCompile(`\n{3,}`)
	reManySpaces   = regexp.MustCompile(` {2,}`)
	reWhitespace   = regexp.MustCompile(`\s+`)

	// Whole lines that are never narrative.
	spamLinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^.*aumentar.*fuente.*$`),
		regexp.MustCompile(`(?im)^.*reducir.*fuente.*$`),
		regexp.MustCompile(`(?im)^.*pagina\s+anterior.*$`),
		regexp.MustCompile(`(?im)^.*patrocin.*\d+\$.*$`),
		regexp.MustCompile(`(?im)^.*invitame\s+un\s+cafe.*$`),
		regexp.MustCompile(`(?im)^NT:.*$`),
		regexp.MustCompile(`(?im)^TL:.*$`),
		regexp.MustCompile(`(?m)^\s*\d+\s*$`),
	}

	// Multi-line boilerplate paragraphs injected by the source site.
	reAntiRepost  = regexp.MustCompile(`(?is)Si estas leyendo las novelas.*?gringos.*?\.`)
	rePatronBlock = regexp.MustCompile(`(?is)(Patrocinio|patrocinar|Invitame).*?(\$|dolares).*?(cap|capitulo)`)
)

// CleanContent applies the secondary cleaning pass to an assembled chapter
// body: collapse repeated blank lines and spaces, drop line-level spam,
// remove known boilerplate blocks and re-join the surviving paragraphs.
func CleanContent(content string) string {
	content = reManyNewlines.ReplaceAllString(content, "\n\n")
	content = reManySpaces.ReplaceAllString(content, " ")

	for _, re := range spamLinePatterns {
		content = re.ReplaceAllString(content, "")
	}

	content = reAntiRepost.ReplaceAllString(content, "")
	content = rePatronBlock.ReplaceAllString(content, "")

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}

	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}

// CollapseSpaces normalizes all runs of whitespace in a single-line field.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
