// Package salutation recovers the name a greeting addresses, so the
// resolver can blacklist it. The filter never supplies a name, it only
// vetoes one.
package salutation

import (
	"regexp"
	"strings"
)

// Greetings sit at the top of booking mail; limiting the window avoids
// matching unrelated capitalized phrases deeper in the body.
const greetingWindow = 500

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Hi|Hello|Dear|Hey)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`Good\s+(?:morning|afternoon|evening)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

// ExtractGreetingName returns the name addressed by a leading salutation,
// or "" when none is found. Pure function.
func ExtractGreetingName(body string) string {
	window := body
	if len(window) > greetingWindow {
		window = window[:greetingWindow]
	}

	for _, p := range greetingPatterns {
		if m := p.FindStringSubmatch(window); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
