package utils

import "regexp"

// FrontMatterRegex matches a leading YAML header fenced by "---" lines,
// with an optional byte order mark. Group 1 is the YAML text.
var FrontMatterRegex = regexp.MustCompile(`(?s)^\x{FEFF}?---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|$)`)
