package board

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// The server stores bodies with escaped markup and <br /> line breaks.
// displayText projects that into plain terminal text; rawText recovers the
// newline-preserving source the user originally typed, so edit mode can be
// re-entered without a round trip.

var (
	strict      = bluemonday.StrictPolicy()
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
)

// displayText strips all markup, expands break tags to newlines, and decodes
// entities. Good enough for terminal display; not a security boundary.
func displayText(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = strict.Sanitize(s)
	return strings.TrimRight(html.UnescapeString(s), "\n")
}

// rawText keeps the body's literal newlines but still expands break tags and
// decodes entities, mirroring what the user typed before the server escaped it.
func rawText(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	return strings.TrimRight(html.UnescapeString(s), "\n")
}
