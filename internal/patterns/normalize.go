package patterns

import "strings"

// EmDash is the canonical separator of the document convention.
const EmDash = "—"

var normalizer = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u2032", "'",
	"\u2015", EmDash,
	"\ufe58", EmDash,
	"\u2e3a", EmDash,
)

// Normalize prepares text for alias comparison: lower case, straight
// apostrophes, canonical em dashes, trimmed. Display text is never
// normalized.
func Normalize(value string) string {
	return strings.TrimSpace(normalizer.Replace(strings.ToLower(value)))
}
