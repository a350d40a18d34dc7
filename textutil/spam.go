package textutil

import (
	"regexp"
	"strings"
)

// Patterns matching reader-widget, navigation, sponsorship and
// translator-note lines that leak into scraped chapter bodies.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)aumentar.*fuente`),
	regexp.MustCompile(`(?i)reducir.*fuente`),
	regexp.MustCompile(`(?i)restablecer.*fuente`),
	regexp.MustCompile(`(?i)pagina\s+anterior`),
	regexp.MustCompile(`(?i)pagina\s+siguiente`),
	regexp.MustCompile(`(?i)patrocin`),
	regexp.MustCompile(`(?i)invitame\s+un\s+cafe`),
	regexp.MustCompile(`(?i)donativo`),
	regexp.MustCompile(`(?i)\$.*=.*cap`),
	regexp.MustCompile(`^NT:`),
	regexp.MustCompile(`^TL:`),
	regexp.MustCompile(`(?i)skydark`),
	regexp.MustCompile(`(?i)click\s+to\s+rate`),
	regexp.MustCompile(`(?i)\[Total:.*Average:`),
}

// IsSpam reports whether a text block is boilerplate rather than narrative.
func IsSpam(text string) bool {
	for _, re := range spamPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	// Short blocks mentioning money are donation plugs.
	if len(text) < 50 && strings.Contains(text, "$") {
		return true
	}
	return false
}
