package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TitleCase trims a name and capitalizes each word for display,
// e.g. "white sulphur springs" -> "White Sulphur Springs".
func TitleCase(s string) string {
	return cases.Title(language.AmericanEnglish).String(strings.ToLower(strings.TrimSpace(s)))
}
