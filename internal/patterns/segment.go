package patterns

import "strings"

// IsPlaceholder reports whether a schedule cell carries no value.
func IsPlaceholder(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case EmDash, "-", "":
		return true
	default:
		return false
	}
}

// SegmentForBase maps a schedule base cell to a segment id. Placeholder and
// unknown cells inherit prev.
func SegmentForBase(base, prev string, bases map[string]string) string {
	if IsPlaceholder(base) {
		return prev
	}
	if segment, ok := bases[strings.ToLower(strings.TrimSpace(base))]; ok {
		return segment
	}
	return prev
}
