package patterns

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDayHeading matches every DayHeadingError through errors.Is.
var ErrInvalidDayHeading = errors.New("invalid day heading")

// DayHeadingError reports a day heading that does not follow the convention.
type DayHeadingError struct {
	Heading string
	Reason  string
}

func (e *DayHeadingError) Error() string {
	return fmt.Sprintf("cannot parse day heading %q: %s", e.Heading, e.Reason)
}

func (e *DayHeadingError) Is(target error) bool {
	return target == ErrInvalidDayHeading
}

// DayHeading is the parsed form of `<Wkd> <Mon> <d> — <title>`.
type DayHeading struct {
	DayOfWeek string
	Date      string
	Title     string
}

var dayHeadingPattern = regexp.MustCompile(`^(\w{3}) (\w{3}) (\d{1,2}) ` + EmDash + ` (.+)$`)

var months = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04", "May": "05", "Jun": "06",
	"Jul": "07", "Aug": "08", "Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

var weekdays = map[string]string{
	"Mon": "Monday", "Tue": "Tuesday", "Wed": "Wednesday", "Thu": "Thursday",
	"Fri": "Friday", "Sat": "Saturday", "Sun": "Sunday",
}

// ParseDayHeading parses a day heading and builds its ISO date from year.
// An unknown weekday abbreviation is kept as written; an unknown month is an
// error.
func ParseDayHeading(text, year string) (DayHeading, error) {
	match := dayHeadingPattern.FindStringSubmatch(text)
	if match == nil {
		return DayHeading{}, &DayHeadingError{Heading: text, Reason: "expected `<Wkd> <Mon> <day> " + EmDash + " <title>`"}
	}

	month, ok := months[match[2]]
	if !ok {
		return DayHeading{}, &DayHeadingError{Heading: text, Reason: fmt.Sprintf("unknown month %q", match[2])}
	}

	dayOfWeek, ok := weekdays[match[1]]
	if !ok {
		dayOfWeek = match[1]
	}

	day := match[3]
	if len(day) == 1 {
		day = "0" + day
	}

	return DayHeading{
		DayOfWeek: dayOfWeek,
		Date:      strings.Join([]string{year, month, day}, "-"),
		Title:     match[4],
	}, nil
}
