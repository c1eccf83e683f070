package utils

import (
	"time"

	"sisyphus/internal/constants"
)

var dateLayouts = []string{
	constants.DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDate accepts the ISO forms found in post front matter.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats a front-matter date for pages. Unparseable input is
// returned unchanged.
func DisplayDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(constants.DisplayDateLayout)
}
