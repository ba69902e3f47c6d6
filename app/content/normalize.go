package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var folder = cases.Lower(language.Und)

// Fold lowercases a string for case-insensitive matching.
func Fold(s string) string {
	return folder.String(s)
}

// FoldCategory maps a requested category name onto the stored form:
// hyphens become spaces and case is folded, so "operating-systems"
// matches a stored "Operating Systems".
func FoldCategory(name string) string {
	return Fold(strings.ReplaceAll(name, "-", " "))
}

// Slug is the inverse direction: a stored category name as it appears in
// /content/category/{name} paths.
func Slug(name string) string {
	return strings.ReplaceAll(Fold(name), " ", "-")
}
