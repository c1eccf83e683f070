package utils

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe identifier. Accented letters are
// transliterated to ASCII, then the lowercased text has every run of
// characters outside a-z and 0-9 collapsed to one hyphen, with no leading or
// trailing hyphen. Punctuation such as ' & @ is treated like any other
// separator. Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	s := strings.ToLower(unidecode.Unidecode(strings.ToLower(title)))
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
