package util

import (
	"regexp"
	"strings"
	"time"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Squash removes every whitespace character. Header signatures are compared
// in squashed form so ragged column spacing does not matter.
func Squash(input string) string {
	return reSpaces.ReplaceAllString(input, "")
}

func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

var receivedLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"20060102150405",
}

// ParseReceivedDate parses a message timestamp. Unparsable input returns the
// zero time, which sorts before any real date.
func ParseReceivedDate(value string) time.Time {
	v := strings.TrimSpace(value)
	for _, layout := range receivedLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
