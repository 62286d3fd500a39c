package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-tripdata/internal/domain"
)

var (
	yearPattern  = regexp.MustCompile(`\d{4}`)
	datesPattern = regexp.MustCompile(`Dates:\s*(.+?)\s*\((.+?)\)`)
	stubWordHead = regexp.MustCompile(`\b\w`)
)

// ExtractYear returns the first four-digit run in text.
func ExtractYear(text string) (string, bool) {
	year := yearPattern.FindString(text)
	return year, year != ""
}

// TitleCase upper-cases the first letter of each space separated word and
// lower-cases the rest. Small words and acronyms get no special treatment.
func TitleCase(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// ParseDates reads `Dates: <range> (<duration>)`.
func ParseDates(text string) (string, string, bool) {
	match := datesPattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// ParseFlight reads `<number>, <date parts...>, <departure> → <arrival>`.
// Missing pieces are left empty.
func ParseFlight(raw string) domain.Flight {
	departurePart, arrivalPart, _ := strings.Cut(raw, " → ")
	if idx := strings.Index(arrivalPart, " → "); idx >= 0 {
		arrivalPart = arrivalPart[:idx]
	}

	parts := strings.Split(departurePart, ", ")
	flight := domain.Flight{
		Number:    parts[0],
		Departure: parts[len(parts)-1],
		Arrival:   strings.TrimSpace(arrivalPart),
	}
	if len(parts) > 2 {
		flight.Date = strings.Join(parts[1:len(parts)-1], ", ")
	}
	return flight
}

// ListValue returns the trimmed remainder of text after prefix and whether
// text starts with prefix.
func ListValue(text, prefix string) (string, bool) {
	if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(text, prefix)), true
}

// StubName derives a display name from a location id: hyphens become
// spaces and each word starts upper case.
func StubName(id string) string {
	return stubWordHead.ReplaceAllStringFunc(strings.ReplaceAll(id, "-", " "), strings.ToUpper)
}
