// Package classifier labels incoming mail as booking-lifecycle traffic or
// not, and flags amendments. Messages failing the allow filter are dropped
// before the extraction oracle is ever invoked.
package classifier

import (
	"regexp"
	"strings"
)

// Result carries the classification of one (subject, body) pair.
type Result struct {
	Allowed     bool
	IsAmendment bool
}

// Only booking-lifecycle mail passes: new bookings, confirmations,
// amendments, urgent bookings, cancellations. Input is lower-cased before
// matching.
var allowedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`new booking`),
	regexp.MustCompile(`booking`),
	regexp.MustCompile(`booking confirmation`),
	regexp.MustCompile(`booking details`),
	regexp.MustCompile(`booking detail change`),
	regexp.MustCompile(`change booking`),
	regexp.MustCompile(`amend(?:ment|ed)?`),
	regexp.MustCompile(`update(?:d)? booking`),
	regexp.MustCompile(`urgent booking`),
	regexp.MustCompile(`urgent: new booking received`),
	regexp.MustCompile(`cancel(?:lation|led)? booking`),
	regexp.MustCompile(`booking cancelled`),
}

// Amendment markers: strikethrough old values, "New <Field>" wording in
// either order, or explicit amendment vocabulary.
var amendmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`~~.*?~~`),
	regexp.MustCompile(`\bnew\b.*?(?:date|pickup|address|time|participants)`),
	regexp.MustCompile(`(?:date|pickup|address|time|participants).*?\bnew\b`),
	regexp.MustCompile(`amended`),
	regexp.MustCompile(`updated`),
	regexp.MustCompile(`changed`),
	regexp.MustCompile(`modification`),
}

// Classify labels a (subject, body) pair. Pure function, no state.
func Classify(subject, body string) Result {
	combined := strings.ToLower(subject + " " + body)

	return Result{
		Allowed:     matchesAny(combined, allowedPatterns),
		IsAmendment: matchesAny(combined, amendmentPatterns),
	}
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
